package entity

import "strings"

// LearnableItem is a two-faced study card owned by a collection.
type LearnableItem struct {
	ID      string
	Front   string
	Back    string
	Tags    []string
	Media   string
	Starred bool
}

// Normalize trims the faces and drops blank tags.
func (it *LearnableItem) Normalize() {
	it.Front = strings.TrimSpace(it.Front)
	it.Back = strings.TrimSpace(it.Back)
	it.Media = strings.TrimSpace(it.Media)
	if it.Tags == nil {
		it.Tags = []string{}
		return
	}
	tags := make([]string, 0, len(it.Tags))
	for _, tag := range it.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	it.Tags = tags
}

// HasTag reports whether the item carries tag, ignoring ASCII case.
func (it LearnableItem) HasTag(tag string) bool {
	needle := NormalizeAnswer(tag)
	for _, t := range it.Tags {
		if NormalizeAnswer(t) == needle {
			return true
		}
	}
	return false
}
