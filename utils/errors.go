package utils

// PermError is an error that will not go away by trying again, such as a
// malformed table definition.
type PermError string

func (e PermError) Error() string {
	return string(e)
}

func (e PermError) IsPermanent() bool {
	return true
}
