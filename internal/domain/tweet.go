package domain

import (
	"encoding/json"
	"fmt"
)

// StatusURLFormat 推文的规范地址，参数依次为作者用户名和推文 ID
const StatusURLFormat = "https://twitter.com/%s/status/%s"

// Envelope 调用方提交的输入，tweets 遵循 X API v2 的响应结构
type Envelope struct {
	Tweets *Timeline       `json:"tweets,omitempty"`
	Stats  json.RawMessage `json:"stats,omitempty"`
}

// Timeline 推文列表及其扩展信息
type Timeline struct {
	Data     []Tweet  `json:"data"`
	Includes Includes `json:"includes"`
}

// Tweet 单条推文
type Tweet struct {
	ID          string       `json:"id"`
	AuthorID    string       `json:"author_id,omitempty"`
	Text        string       `json:"text"`
	Attachments *Attachments `json:"attachments,omitempty"`
	URL         string       `json:"url,omitempty"`
}

// Attachments 推文附件
type Attachments struct {
	MediaKeys []string `json:"media_keys"`
}

// Includes 推文引用的用户与媒体
type Includes struct {
	Users []User  `json:"users,omitempty"`
	Media []Media `json:"media,omitempty"`
}

// User 推文作者
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Media 媒体对象
type Media struct {
	MediaKey        string `json:"media_key"`
	Type            string `json:"type"`
	URL             string `json:"url,omitempty"`
	PreviewImageURL string `json:"preview_image_url,omitempty"`
}

// MediaTypePhoto 只有图片会被带入报告的 image 字段
const MediaTypePhoto = "photo"

// UserByID 在 includes.users 中查找作者
func (inc Includes) UserByID(id string) (User, bool) {
	for _, u := range inc.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// MediaByKey 在 includes.media 中查找媒体
func (inc Includes) MediaByKey(key string) (Media, bool) {
	for _, m := range inc.Media {
		if m.MediaKey == key {
			return m, true
		}
	}
	return Media{}, false
}

// StatusURL 根据作者和推文 ID 拼出推文地址
func StatusURL(author, id string) string {
	return fmt.Sprintf(StatusURLFormat, author, id)
}

// AuthorHandle 优先使用作者的用户名，找不到时退回 author_id
func AuthorHandle(t Tweet, inc Includes) string {
	if u, ok := inc.UserByID(t.AuthorID); ok && u.Username != "" {
		return u.Username
	}
	return t.AuthorID
}

// CanonicalURL 返回推文自带的 url，没有则按作者和 ID 合成；
// 缺少 ID 或作者时无法合成，返回空串
func CanonicalURL(t Tweet, inc Includes) string {
	if t.URL != "" {
		return t.URL
	}
	handle := AuthorHandle(t, inc)
	if t.ID == "" || handle == "" {
		return ""
	}
	return StatusURL(handle, t.ID)
}

// ImageFor 返回推文第一张图片的地址，非 photo 类型的媒体忽略
func ImageFor(t Tweet, inc Includes) string {
	if t.Attachments == nil {
		return ""
	}
	for _, key := range t.Attachments.MediaKeys {
		m, ok := inc.MediaByKey(key)
		if ok && m.Type == MediaTypePhoto && m.URL != "" {
			return m.URL
		}
	}
	return ""
}
