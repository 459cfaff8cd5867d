package txn

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestIsNotSupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"unrelated error", errors.New("connection reset by peer"), false},
		{
			"illegal operation code",
			mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member"},
			true,
		},
		{
			"transactions not allowed code",
			mongo.CommandError{Code: 51, Message: "Illegal operation"},
			true,
		},
		{
			"not supported in transaction code",
			mongo.CommandError{Code: 263, Message: "Cannot run in a multi-document transaction"},
			true,
		},
		{
			"failed transaction with other code",
			mongo.CommandError{Code: 112, Message: "WriteConflict"},
			false,
		},
		{
			"keyword pair: transaction and replica set",
			errors.New("transaction failed because this is not a replica set member"),
			true,
		},
		{
			"keyword pair: session and not supported, case folded",
			errors.New("SESSION operations are NOT SUPPORTED on this server"),
			true,
		},
		{
			"single keyword is not enough",
			errors.New("transaction aborted"),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotSupported(tt.err); got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
