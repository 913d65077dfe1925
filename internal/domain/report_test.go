package domain

import (
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type classificationCase struct {
	Name   string `yaml:"name"`
	Text   string `yaml:"text"`
	Nature string `yaml:"nature"`
}

func loadClassificationCases(t *testing.T) []classificationCase {
	t.Helper()
	data, err := os.ReadFile("testdata/classification.yaml")
	require.NoError(t, err)

	var cases []classificationCase
	require.NoError(t, yaml.Unmarshal(data, &cases))
	require.NotEmpty(t, cases)
	return cases
}

func TestClassify_ReferenceCases(t *testing.T) {
	for _, tc := range loadClassificationCases(t) {
		t.Run(tc.Name, func(t *testing.T) {
			want, ok := ParseNature(tc.Nature)
			require.True(t, ok, "fixture nature %q is not a known nature", tc.Nature)
			assert.Equal(t, want, Classify(tc.Text))
		})
	}
}

func TestParseNature(t *testing.T) {
	tests := []struct {
		in     string
		want   Nature
		wantOK bool
	}{
		{"X thread", NatureXThread, true},
		{"x THREAD", NatureXThread, true},
		{" nfts ", NatureNFTs, true},
		{"nft", NatureNFTs, true},
		{"AO Computer", NatureAOComputer, true},
		{"developer", NatureDeveloper, true},
		{"gossip", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNature(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"url", "Read more at https://arweave.org/blog/post now", "Read more at now"},
		{"www url", "See www.example.com for details", "See for details"},
		{"hashtag", "Permanent data #Arweave #web3 is here", "Permanent data is here"},
		{"emoji", "Launch day 🚀🔥 is here ✨", "Launch day is here"},
		{"newlines", "first line\n\nsecond line", "first line second line"},
		{"punctuation after url", "Docs are live https://docs.ar.io.", "Docs are live"},
		{"space before punctuation", "Big news 🎉 !", "Big news!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))

	long := strings.Repeat("word ", 60)
	got := Truncate(long, MaxSummaryRunes)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), MaxSummaryRunes)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.False(t, strings.HasSuffix(strings.TrimSuffix(got, "…"), " "))

	noSpaces := strings.Repeat("日", 300)
	got = Truncate(noSpaces, MaxSummaryRunes)
	assert.Equal(t, MaxSummaryRunes, utf8.RuneCountInString(got))
}

func TestStatusURL(t *testing.T) {
	assert.Equal(t, "https://twitter.com/abc/status/123", StatusURL("abc", "123"))
}

func TestImageFor(t *testing.T) {
	inc := Includes{
		Media: []Media{
			{MediaKey: "3_1", Type: "video", URL: "https://video.example/1.mp4"},
			{MediaKey: "3_2", Type: MediaTypePhoto, URL: "https://pbs.twimg.com/media/2.jpg"},
		},
	}

	tests := []struct {
		name  string
		tweet Tweet
		want  string
	}{
		{"no attachments", Tweet{ID: "1"}, ""},
		{"photo", Tweet{ID: "1", Attachments: &Attachments{MediaKeys: []string{"3_2"}}}, "https://pbs.twimg.com/media/2.jpg"},
		{"video is skipped", Tweet{ID: "1", Attachments: &Attachments{MediaKeys: []string{"3_1"}}}, ""},
		{"first photo after video", Tweet{ID: "1", Attachments: &Attachments{MediaKeys: []string{"3_1", "3_2"}}}, "https://pbs.twimg.com/media/2.jpg"},
		{"unknown key", Tweet{ID: "1", Attachments: &Attachments{MediaKeys: []string{"3_9"}}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ImageFor(tt.tweet, inc))
		})
	}
}

func TestCanonicalURL(t *testing.T) {
	inc := Includes{Users: []User{{ID: "42", Name: "Arweave", Username: "ArweaveEco"}}}

	assert.Equal(t, "https://x.com/a/status/1", CanonicalURL(Tweet{ID: "1", URL: "https://x.com/a/status/1"}, inc))
	assert.Equal(t, "https://twitter.com/ArweaveEco/status/7", CanonicalURL(Tweet{ID: "7", AuthorID: "42"}, inc))
	assert.Equal(t, "https://twitter.com/99/status/8", CanonicalURL(Tweet{ID: "8", AuthorID: "99"}, inc))
	assert.Empty(t, CanonicalURL(Tweet{}, inc))
	assert.Empty(t, CanonicalURL(Tweet{ID: "9"}, inc))
}

func TestNormalize(t *testing.T) {
	env := &Envelope{Tweets: &Timeline{
		Data: []Tweet{
			{ID: "1", AuthorID: "42", Text: "Thread on ao and NFTs 🧵", URL: "https://twitter.com/ArweaveEco/status/1"},
			{ID: "2", AuthorID: "42", Text: "New photo drop", Attachments: &Attachments{MediaKeys: []string{"3_1"}}, URL: "https://twitter.com/ArweaveEco/status/2"},
		},
		Includes: Includes{
			Users: []User{{ID: "42", Name: "Arweave", Username: "ArweaveEco"}},
			Media: []Media{{MediaKey: "3_1", Type: MediaTypePhoto, URL: "https://pbs.twimg.com/media/1.jpg"}},
		},
	}}

	reports := []Report{
		{Text: "Arweave explains ao and NFTs.", Nature: NatureAOComputer, URL: "https://x.com/ArweaveEco/status/1"},
		{Text: "Arweave shares a new photo #art https://t.co/abc", Nature: "photos", URL: "https://twitter.com/ArweaveEco/status/2"},
		{Text: "Network hit 5M transactions today", Nature: "", URL: ""},
	}

	got := Normalize(reports, env)
	require.Len(t, got, 3)

	// 来源推文带推文串标记，分类被覆盖
	assert.Equal(t, NatureXThread, got[0].Nature)
	assert.Equal(t, "https://twitter.com/ArweaveEco/status/1", got[0].URL)
	assert.Empty(t, got[0].Image)

	// 非法分类按来源推文重新分类，图片从 includes.media 补齐
	assert.Equal(t, "Arweave shares a new photo", got[1].Text)
	assert.Equal(t, NatureCommunity, got[1].Nature)
	assert.Equal(t, "https://pbs.twimg.com/media/1.jpg", got[1].Image)

	// 找不到来源时按报告文本分类
	assert.Equal(t, NatureStats, got[2].Nature)
	assert.Empty(t, got[2].URL)
}

func TestNormalize_NilEnvelope(t *testing.T) {
	got := Normalize([]Report{{Text: "Follow the :thread: below", Nature: NatureCommunity}}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, NatureXThread, got[0].Nature)
}
