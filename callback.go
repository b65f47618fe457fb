package asyncbridge

// A Callback is a completion notification.
//
// It resumes whatever the consumer has pending with either a value or
// an error, never both.
// Callbacks handed to [Schedule] are called on the [Loop], once per Task.
type Callback[V any] func(v V, err error)
