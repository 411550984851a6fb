package status

// MessageSource is anything holding the last kernel status message, in
// practice a cosmology handle.
type MessageSource interface {
	StatusMessage() string
}

// Check converts a kernel status into an error. A zero code yields nil.
// src may be nil when no handle took part in the call, in which case the
// error carries an empty message.
func Check(code Code, src MessageSource) error {
	if code == OK {
		return nil
	}

	msg := ""
	if src != nil {
		msg = src.StatusMessage()
	}

	return &KernelError{
		Kind:    KindOf(code),
		Code:    code,
		Message: msg,
	}
}
