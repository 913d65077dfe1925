package domain

import (
	"regexp"
	"strings"
	"unicode"
)

// Nature 报告分类
type Nature string

const (
	NatureCommunity  Nature = "community"
	NatureAOComputer Nature = "ao computer"
	NatureNFTs       Nature = "NFTs"
	NatureMedia      Nature = "media"
	NatureEvent      Nature = "event"
	NatureStats      Nature = "stats"
	NatureXThread    Nature = "X thread"
	NatureDeveloper  Nature = "developer"
)

// Natures 全部合法分类
var Natures = []Nature{
	NatureCommunity,
	NatureAOComputer,
	NatureNFTs,
	NatureMedia,
	NatureEvent,
	NatureStats,
	NatureXThread,
	NatureDeveloper,
}

// MaxSummaryRunes 摘要长度上限（字符数）
const MaxSummaryRunes = 200

// Report 返回给调用方的报告
type Report struct {
	Text   string `json:"text"`
	Body   string `json:"body,omitempty"`
	Nature Nature `json:"nature"`
	Image  string `json:"image,omitempty"`
	URL    string `json:"url"`
}

var natureAliases = map[string]Nature{
	"ao":       NatureAOComputer,
	"nft":      NatureNFTs,
	"thread":   NatureXThread,
	"x-thread": NatureXThread,
	"stat":     NatureStats,
	"events":   NatureEvent,
}

// ParseNature 大小写不敏感地解析分类名
func ParseNature(s string) (Nature, bool) {
	s = strings.TrimSpace(s)
	for _, n := range Natures {
		if strings.EqualFold(s, string(n)) {
			return n, true
		}
	}
	if n, ok := natureAliases[strings.ToLower(s)]; ok {
		return n, true
	}
	return "", false
}

// 分类关键词，按优先级排列
var natureRules = []struct {
	nature Nature
	match  func(string) bool
}{
	{NatureXThread, IsThread},
	{NatureAOComputer, regexp.MustCompile(`(?i)\bao\b|hyper[- ]?parallel`).MatchString},
	{NatureNFTs, regexp.MustCompile(`(?i)\bnfts?\b|atomic[- ]assets?`).MatchString},
	{NatureStats, isStats},
	{NatureDeveloper, regexp.MustCompile(`(?i)\b(developers?|devs?|sdks?|apis?|github|open[- ]source|releases?|released|docs|documentation|testnet|mainnet|cli)\b`).MatchString},
	{NatureEvent, regexp.MustCompile(`(?i)\b(events?|hackathons?|meetups?|conferences?|summit|spaces|livestream|workshops?|webinars?|join us)\b`).MatchString},
	{NatureMedia, regexp.MustCompile(`(?i)\b(podcasts?|videos?|interviews?|articles?|episodes?|youtube|blog|newsletter)\b`).MatchString},
}

var (
	statsKeyword = regexp.MustCompile(`(?i)\b(price|users|transactions|txs|tps|volume|market cap|tvl|stats|statistics|growth|increase[ds]?)\b`)
	statsNumber  = regexp.MustCompile(`\d`)
)

func isStats(s string) bool {
	return statsKeyword.MatchString(s) && statsNumber.MatchString(s)
}

// IsThread 判断文本是否带有推文串标记
func IsThread(s string) bool {
	return strings.Contains(s, ":thread:") || strings.ContainsRune(s, '\U0001F9F5')
}

// Classify 按关键词给文本分类，X thread 优先于其他分类，都不匹配时归为 community
func Classify(text string) Nature {
	for _, r := range natureRules {
		if r.match(text) {
			return r.nature
		}
	}
	return NatureCommunity
}

var (
	urlPattern     = regexp.MustCompile(`(?i)\bhttps?://\S+|\bwww\.\S+`)
	hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
	spaceBeforePct = regexp.MustCompile(`\s+([.,!?;:])`)
)

// Sanitize 去掉链接、话题标签和 emoji，并合并为单段文本
func Sanitize(s string) string {
	s = urlPattern.ReplaceAllString(s, " ")
	s = hashtagPattern.ReplaceAllString(s, " ")
	s = strings.Map(func(r rune) rune {
		if isEmoji(r) {
			return -1
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), " ")
	return spaceBeforePct.ReplaceAllString(s, "$1")
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r == 0xFE0F || r == 0x200D:
		return true
	}
	return unicode.Is(unicode.So, r)
}

// Truncate 按字符数截断，尽量在空格处断开，结果（含省略号）不超过 max
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	cut := runes[:max-1]
	for i := len(cut) - 1; i > len(cut)/2; i-- {
		if cut[i] == ' ' {
			cut = cut[:i]
			break
		}
	}
	return strings.TrimRight(string(cut), " ,;:") + "…"
}

var statusIDPattern = regexp.MustCompile(`/status(?:es)?/(\w+)`)

// tweetIndex 按推文 ID 和 url 查找报告的来源推文
type tweetIndex struct {
	includes Includes
	byID     map[string]Tweet
	byURL    map[string]Tweet
}

func newTweetIndex(env *Envelope) *tweetIndex {
	idx := &tweetIndex{byID: map[string]Tweet{}, byURL: map[string]Tweet{}}
	if env == nil || env.Tweets == nil {
		return idx
	}
	idx.includes = env.Tweets.Includes
	for _, t := range env.Tweets.Data {
		if t.ID != "" {
			idx.byID[t.ID] = t
		}
		if t.URL != "" {
			idx.byURL[t.URL] = t
		}
	}
	return idx
}

func (idx *tweetIndex) lookup(url string) (Tweet, bool) {
	if url == "" {
		return Tweet{}, false
	}
	if t, ok := idx.byURL[url]; ok {
		return t, true
	}
	if m := statusIDPattern.FindStringSubmatch(url); m != nil {
		t, ok := idx.byID[m[1]]
		return t, ok
	}
	return Tweet{}, false
}

// Normalize 校正模型生成的报告：
// 文本去掉链接、话题和 emoji 并限制长度；分类不合法时按关键词重新分类；
// 来源推文是推文串时分类强制为 X thread；来源推文带图片时补齐 image。
func Normalize(reports []Report, env *Envelope) []Report {
	idx := newTweetIndex(env)

	out := make([]Report, 0, len(reports))
	for _, r := range reports {
		raw := r.Text + " " + r.Body
		src, hasSrc := idx.lookup(r.URL)

		r.Text = Truncate(Sanitize(r.Text), MaxSummaryRunes)
		r.Body = Sanitize(r.Body)

		nature, ok := ParseNature(string(r.Nature))
		if !ok {
			if hasSrc {
				nature = Classify(src.Text)
			} else {
				nature = Classify(raw)
			}
		}
		if IsThread(raw) || (hasSrc && IsThread(src.Text)) {
			nature = NatureXThread
		}
		r.Nature = nature

		if hasSrc {
			r.URL = CanonicalURL(src, idx.includes)
			if r.Image == "" {
				r.Image = ImageFor(src, idx.includes)
			}
		}
		out = append(out, r)
	}
	return out
}
