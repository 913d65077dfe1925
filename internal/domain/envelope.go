package domain

import (
	"encoding/json"
)

// PrepareInput 为缺少 url 的推文补齐规范地址。
// 返回转发给模型的 JSON 以及解析出的结构化视图；
// 输入结构不符合预期时原样返回 JSON，结构化视图为 nil。
func PrepareInput(raw json.RawMessage) (json.RawMessage, *Envelope) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return raw, nil
	}
	if env.Tweets == nil || len(env.Tweets.Data) == 0 {
		return raw, &env
	}

	out, timeline, err := fillTweetURLs(raw)
	if err != nil {
		return raw, &env
	}
	// 结构化视图以实际转发的 tweets 为准
	env.Tweets = timeline
	return out, &env
}

// fillTweetURLs 只改动 tweets.data[*].url，其余字段保持原样。
// data 数组按同一段 JSON 分别解析为 map 与 Tweet，两者下标一一对应
func fillTweetURLs(raw json.RawMessage) (json.RawMessage, *Timeline, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, nil, err
	}
	var tweets map[string]json.RawMessage
	if err := json.Unmarshal(top["tweets"], &tweets); err != nil {
		return nil, nil, err
	}
	var data []map[string]json.RawMessage
	if err := json.Unmarshal(tweets["data"], &data); err != nil {
		return nil, nil, err
	}

	timeline := &Timeline{}
	if err := json.Unmarshal(tweets["data"], &timeline.Data); err != nil {
		return nil, nil, err
	}
	if inc, ok := tweets["includes"]; ok {
		if err := json.Unmarshal(inc, &timeline.Includes); err != nil {
			return nil, nil, err
		}
	}

	changed := false
	for i, item := range data {
		t := timeline.Data[i]
		if t.URL != "" || item == nil {
			continue
		}
		url := CanonicalURL(t, timeline.Includes)
		if url == "" {
			continue
		}
		u, err := json.Marshal(url)
		if err != nil {
			return nil, nil, err
		}
		item["url"] = u
		timeline.Data[i].URL = url
		changed = true
	}
	if !changed {
		return raw, timeline, nil
	}

	var err error
	if tweets["data"], err = json.Marshal(data); err != nil {
		return nil, nil, err
	}
	if top["tweets"], err = json.Marshal(tweets); err != nil {
		return nil, nil, err
	}
	out, err := json.Marshal(top)
	if err != nil {
		return nil, nil, err
	}
	return out, timeline, nil
}
