//go:build unit

package commands_test

import (
	"context"
	"testing"

	"library-lending/internal/pkg/clock"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase/commands"
	"library-lending/internal/usecase/pipeline"
	"library-lending/tests/common/builder"
	commandsmock "library-lending/tests/mock/commands"
	sharedmock "library-lending/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newCommandBus(t *testing.T, next commands.BookCommands) (commands.BookCommands, *sharedmock.MockRecorder) {
	t.Helper()
	v, err := pipeline.NewValidator()
	require.NoError(t, err)
	clk := clock.NewMockClock(fixedNow)
	recorder := sharedmock.NewMockRecorder()
	p := pipeline.New(
		pipeline.Timing(recorder, nil, clk, 0),
		pipeline.Validation(v, clk),
	)
	return commands.NewBookCommandBus(next, p), recorder
}

func TestBookCommandBus(t *testing.T) {
	ctx := context.Background()

	t.Run("valid command reaches the service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := commandsmock.NewMockBookCommands(ctrl)
		bus, recorder := newCommandBus(t, svc)
		cmd := builder.NewBookBuilder().BuildCreateCommand()
		want := builder.NewBookBuilder().BuildView()

		svc.EXPECT().CreateBook(gomock.Any(), cmd).Return(want, nil)

		got, err := bus.CreateBook(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, want, got)
		recorder.AssertCalled(t, "ObserveRequest", "CreateBook", "command", "ok", mock.Anything)
	})

	invalid := map[string]func(bus commands.BookCommands) error{
		"create with blank name": func(bus commands.BookCommands) error {
			_, err := bus.CreateBook(ctx, builder.NewBookBuilder().WithName(" ").BuildCreateCommand())
			return err
		},
		"create with future year": func(bus commands.BookCommands) error {
			cmd := builder.NewBookBuilder().BuildCreateCommand()
			cmd.PublicationYear = fixedNow.Year() + 1
			_, err := bus.CreateBook(ctx, cmd)
			return err
		},
		"borrow without book id": func(bus commands.BookCommands) error {
			_, err := bus.BorrowBook(ctx, commands.BorrowBookCommand{CustomerName: "Ada"})
			return err
		},
		"return without customer": func(bus commands.BookCommands) error {
			_, err := bus.ReturnBook(ctx, commands.ReturnBookCommand{BookID: uuid.New()})
			return err
		},
	}
	for name, call := range invalid {
		t.Run(name+" never reaches the service", func(t *testing.T) {
			ctrl := gomock.NewController(t)
			bus, _ := newCommandBus(t, commandsmock.NewMockBookCommands(ctrl))

			err := call(bus)

			require.Error(t, err)
			assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		})
	}

	t.Run("service errors pass through unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := commandsmock.NewMockBookCommands(ctrl)
		bus, recorder := newCommandBus(t, svc)
		cmd := commands.BorrowBookCommand{BookID: uuid.New(), CustomerName: "Ada"}
		outOfStock := errs.Mark(errs.New("no copies"), errs.ErrOutOfStock)

		svc.EXPECT().BorrowBook(gomock.Any(), cmd).Return(nil, outOfStock)

		_, err := bus.BorrowBook(ctx, cmd)

		assert.Equal(t, outOfStock, err)
		recorder.AssertCalled(t, "ObserveRequest", "BorrowBook", "command", "OutOfStock", mock.Anything)
	})
}
