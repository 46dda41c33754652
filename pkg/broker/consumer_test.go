package broker_test

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/fiscal/internal/entity"
	"github.com/samandr77/microservices/fiscal/pkg/broker"
)

func TestDispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		errs      []error
		wantErr   error
		wantCalls int
	}{
		{name: "success", errs: []error{nil}, wantCalls: 1},
		{name: "recovers", errs: []error{entity.ErrStorage, nil}, wantCalls: 2},
		{name: "gives up", errs: []error{entity.ErrStorage, entity.ErrStorage, entity.ErrStorage}, wantErr: entity.ErrStorage, wantCalls: 3},
		{name: "validation is not retried", errs: []error{entity.ErrValidation}, wantErr: entity.ErrValidation, wantCalls: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			h := func(context.Context, kafka.Message) error {
				err := tc.errs[calls]
				calls++

				return err
			}

			err := broker.Dispatch(context.Background(), h, kafka.Message{Topic: "orders.completed"}, time.Millisecond)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}

			require.Equal(t, tc.wantCalls, calls)
		})
	}
}
