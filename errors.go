package asyncbridge

import "errors"

var (
	// ErrInvalidArgument is returned by the host entry points when a required
	// argument is missing.
	ErrInvalidArgument = errors.New("asyncbridge: invalid argument")

	// ErrDisconnected is returned by [Sender.Send] when the receiving half has
	// been dropped, and by [Receiver.Recv] when the sending half has been
	// dropped and no values are left.
	ErrDisconnected = errors.New("asyncbridge: channel disconnected")

	// ErrReceive is what a [ReceiveTask] fails with when its channel
	// disconnects before a value arrives.
	ErrReceive = errors.New("unable to receive data")

	// ErrSend is what a push function returned by [Bridge] fails with when
	// its value cannot be delivered.
	ErrSend = errors.New("unable to send data")
)
