package chat

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

type InputKind string

const (
	KindText  InputKind = "text"
	KindPDF   InputKind = "pdf"
	KindImage InputKind = "image"
)

// Input is one user submission.
type Input struct {
	Kind     InputKind
	Text     string
	FileName string
	Data     []byte
	// UploadID identifies one upload widget render; repeated submissions of
	// the same id are processed once.
	UploadID string
}

// Classify sniffs the upload content. The file name is only used in errors.
func Classify(fileName string, data []byte) (InputKind, error) {
	mt := mimetype.Detect(data)
	switch {
	case mt.Is("application/pdf"):
		return KindPDF, nil
	case mt.Is("image/png"), mt.Is("image/jpeg"):
		return KindImage, nil
	default:
		return "", fmt.Errorf("%w: %s (%s)", ErrUnsupportedUpload, fileName, mt.String())
	}
}

// NewUpload builds an Input for an uploaded file.
func NewUpload(uploadID, fileName string, data []byte) (Input, error) {
	kind, err := Classify(fileName, data)
	if err != nil {
		return Input{}, err
	}
	return Input{Kind: kind, FileName: fileName, Data: data, UploadID: uploadID}, nil
}

func NewText(text string) Input {
	return Input{Kind: KindText, Text: text}
}
