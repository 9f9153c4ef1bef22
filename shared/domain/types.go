package domain

type (
	Username  = string
	UserId    = int
	PostIndex = int
	PageIndex = int
	ImageId   = int
	Sentence  = string
)
