package models

type Chat_Request struct {
	Messages []Chat_Message `json:"messages"`
}
