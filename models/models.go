package models

import (
	"encoding/json"
	"math"
)

// RawPost is one entry of the exported posts array. Only the fields the feed
// needs are kept, and every one of them is optional.
type RawPost struct {
	Timestamp   int64
	Data        []PostData
	Attachments []Attachment
}

// PostData is an item of a raw post's data list
type PostData struct {
	Post string
}

// Attachment groups a number of attachment items
type Attachment struct {
	Data []AttachmentData
}

// AttachmentData either references a media file or an external link
type AttachmentData struct {
	MediaUri    string
	ExternalUrl string
}

// Post is the normalized record written to the website feed
type Post struct {
	Id        string  `json:"id"`
	Timestamp int64   `json:"timestamp"`
	Date      string  `json:"date"`
	Text      string  `json:"text"`
	ImageUrl  *string `json:"imageUrl"`
}

// UnmarshalJSON decodes a raw post without ever failing on its shape.
// Fields that are missing or have an unexpected type are left empty.
func (p *RawPost) UnmarshalJSON(b []byte) error {
	*p = RawPost{}

	var raw struct {
		Timestamp   json.RawMessage `json:"timestamp"`
		Data        json.RawMessage `json:"data"`
		Attachments json.RawMessage `json:"attachments"`
	}
	if !decode(b, &raw) {
		return nil
	}

	// Timestamps outside the int64 range are treated as missing
	var ts float64
	if decode(raw.Timestamp, &ts) && ts >= math.MinInt64 && ts < math.MaxInt64 {
		p.Timestamp = int64(ts)
	}

	for _, item := range list(raw.Data) {
		var d struct {
			Post string `json:"post"`
		}
		if decode(item, &d) {
			p.Data = append(p.Data, PostData{Post: d.Post})
		} else {
			p.Data = append(p.Data, PostData{})
		}
	}

	for _, group := range list(raw.Attachments) {
		var a struct {
			Data json.RawMessage `json:"data"`
		}
		decode(group, &a)

		attachment := Attachment{}
		for _, item := range list(a.Data) {
			attachment.Data = append(attachment.Data, attachmentData(item))
		}
		p.Attachments = append(p.Attachments, attachment)
	}

	return nil
}

func attachmentData(item json.RawMessage) AttachmentData {
	var fields struct {
		Media           json.RawMessage `json:"media"`
		ExternalContext json.RawMessage `json:"external_context"`
	}
	if !decode(item, &fields) {
		return AttachmentData{}
	}

	var media struct {
		Uri string `json:"uri"`
	}
	var external struct {
		Url string `json:"url"`
	}
	decode(fields.Media, &media)
	decode(fields.ExternalContext, &external)

	return AttachmentData{
		MediaUri:    media.Uri,
		ExternalUrl: external.Url,
	}
}

// list splits a JSON array into its elements, returning nil for anything else
func list(raw json.RawMessage) []json.RawMessage {
	var items []json.RawMessage
	if !decode(raw, &items) {
		return nil
	}
	return items
}

func decode(raw json.RawMessage, v interface{}) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}
