package domain

// MessageKind is the DingTalk robot message type.
type MessageKind string

const (
	KindText     MessageKind = "text"
	KindMarkdown MessageKind = "markdown"

	// KindPlain is a relay-only kind: a text message sent without formatting.
	KindPlain MessageKind = "plain"
)

func (k MessageKind) IsValid() bool {
	switch k {
	case KindPlain, KindText, KindMarkdown:
		return true
	}
	return false
}

// TextContent is the payload of a text message.
type TextContent struct {
	Content string `json:"content"`
}

// MarkdownContent is the payload of a markdown message.
type MarkdownContent struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// OutboundMessage is the JSON body posted to the robot webhook.
// Exactly one of Text and Markdown is set, matching MsgType.
type OutboundMessage struct {
	At       []string         `json:"at"`
	Text     *TextContent     `json:"text,omitempty"`
	Markdown *MarkdownContent `json:"markdown,omitempty"`
	MsgType  MessageKind      `json:"msgtype"`
}

func NewTextMessage(content string) OutboundMessage {
	return OutboundMessage{
		At:      []string{},
		Text:    &TextContent{Content: content},
		MsgType: KindText,
	}
}

func NewMarkdownMessage(title, text string) OutboundMessage {
	return OutboundMessage{
		At:       []string{},
		Markdown: &MarkdownContent{Title: title, Text: text},
		MsgType:  KindMarkdown,
	}
}

// AlertRequest is the inbound payload accepted by the relay API.
type AlertRequest struct {
	Kind    MessageKind `json:"kind"`
	Message string      `json:"message"`
	Frames  []Frame     `json:"frames,omitempty"`
}

// MaxMessageBytes is DingTalk's limit on a message body.
const MaxMessageBytes = 20000

// Validate defaults Kind to plain and checks the request. The length check
// covers Message only. For text alerts the rendered header and stack lines
// are added after validation, so a message near MaxMessageBytes can still
// exceed the limit once formatted; DingTalk rejects such a body with a
// non-zero errcode in the response, not a transport failure.
func (r *AlertRequest) Validate() error {
	if r.Kind == "" {
		r.Kind = KindPlain
	}
	if !r.Kind.IsValid() {
		return ErrInvalidKind
	}
	if r.Message == "" {
		return ErrEmptyMessage
	}
	if len(r.Message) > MaxMessageBytes {
		return ErrMessageTooLong
	}
	return nil
}

// ErrorContext converts the request into the form the alert client formats.
func (r *AlertRequest) ErrorContext() ErrorContext {
	return ErrorContext{Message: r.Message, Frames: r.Frames}
}
