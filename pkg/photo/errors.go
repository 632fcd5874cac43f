package photo

import "fmt"

// Kind enumerates the closed set of reasons a photo selection can fail.
type Kind int

const (
	// KindUnsupportedType marks files whose MIME type is not image/*.
	KindUnsupportedType Kind = iota + 1
	// KindTooLarge marks files exceeding MaxBytes.
	KindTooLarge
	// KindReadFailure marks files that could not be read or encoded.
	KindReadFailure
)

// String returns the identifier used in logs.
func (k Kind) String() string {
	switch k {
	case KindUnsupportedType:
		return "unsupported_type"
	case KindTooLarge:
		return "too_large"
	case KindReadFailure:
		return "read_failure"
	default:
		return "unknown"
	}
}

// UploadError is the user-visible outcome of a rejected selection attempt. It
// stays on the controller until the next attempt or an explicit removal.
type UploadError struct {
	Kind   Kind
	Detail string
}

// Error returns the human-readable message shown next to the uploader.
func (e *UploadError) Error() string {
	switch e.Kind {
	case KindUnsupportedType:
		return "please select an image file"
	case KindTooLarge:
		return fmt.Sprintf("the photo must be smaller than %d MB", MaxBytes/(1024*1024))
	case KindReadFailure:
		return "the photo could not be read, please try another file"
	default:
		return "the photo could not be uploaded"
	}
}

func unsupportedType(mime string) *UploadError {
	return &UploadError{Kind: KindUnsupportedType, Detail: fmt.Sprintf("mime type %q is not an image", mime)}
}

func tooLarge(size int64) *UploadError {
	return &UploadError{Kind: KindTooLarge, Detail: fmt.Sprintf("%d bytes exceeds the %d byte limit", size, MaxBytes)}
}

func readFailure(err error) *UploadError {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &UploadError{Kind: KindReadFailure, Detail: detail}
}
