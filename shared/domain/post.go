package domain

import "time"

type Role int

const (
	RoleOpener Role = iota
	RoleReply
	RoleAuthorUpdate
)

func (r Role) String() string {
	switch r {
	case RoleOpener:
		return "opener"
	case RoleReply:
		return "reply"
	case RoleAuthorUpdate:
		return "author_update"
	default:
		return "unknown"
	}
}

type ParagraphBlock struct {
	Sentences []Sentence
	Emoji     string   // last decoration appended in this paragraph, empty if none
	Image     *ImageId // optional
}

// Quote references a paragraph of an earlier post.
type Quote struct {
	PostIndex      PostIndex
	ParagraphIndex int
	Author         Username
	Timestamp      time.Time
	Paragraph      ParagraphBlock // copy taken before any image was attached
}

type Post struct {
	Index          PostIndex // 1-based
	Author         User
	Timestamp      time.Time
	IsOriginalPost bool // authored by the original poster
	Role           Role
	Quote          *Quote
	Content        []ParagraphBlock
}
