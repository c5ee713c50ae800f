package transaction_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
)

func expense(amount int64, cat, sub, date, note string) transaction.Transaction {
	return transaction.Transaction{
		ID:          uuid.New(),
		Amount:      decimal.NewFromInt(amount),
		Type:        transaction.TypeExpense,
		Category:    cat,
		SubCategory: sub,
		Date:        date,
		Note:        note,
	}
}

func income(amount int64, cat, date, note string) transaction.Transaction {
	return transaction.Transaction{
		ID:       uuid.New(),
		Amount:   decimal.NewFromInt(amount),
		Type:     transaction.TypeIncome,
		Category: cat,
		Date:     date,
		Note:     note,
	}
}

func ids(txs []transaction.Transaction) []uuid.UUID {
	out := make([]uuid.UUID, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}

	return out
}

func TestService_Load(t *testing.T) {
	stored := []transaction.Transaction{
		expense(100, "FOOD & DINING", "Restaurants", "2024-05-01", ""),
		income(5000, "SALARY", "2024-05-01", "May"),
	}

	type testCase struct {
		name      string
		setupMock func(m *transaction.MockRepository)
		wantLen   int
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().LoadTransactions(gomock.Any()).Return(stored, nil)
			},
			wantLen: 2,
		},
		{
			name: "Absent",
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().LoadTransactions(gomock.Any()).Return(nil, nil)
			},
			wantLen: 0,
		},
		{
			name: "Malformed",
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().LoadTransactions(gomock.Any()).
					Return(nil, fmt.Errorf("decoding: %w", transaction.ErrMalformed))
			},
			wantLen: 0,
		},
		{
			name: "ReadError",
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().LoadTransactions(gomock.Any()).Return(stored, errors.New("disk gone"))
			},
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := transaction.NewService(repo)
			svc.Load(context.Background())

			assert.Len(t, svc.All(), tt.wantLen)
		})
	}
}

func TestService_Add_AppendsInEntryOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	later := expense(10, "FOOD & DINING", "", "2024-06-01", "")
	earlier := expense(20, "FOOD & DINING", "", "2024-01-01", "")

	var saved [][]transaction.Transaction

	repo.EXPECT().
		SaveTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txs []transaction.Transaction) error {
			saved = append(saved, txs)
			return nil
		}).
		Times(2)

	require.NoError(t, svc.Add(context.Background(), later))
	require.NoError(t, svc.Add(context.Background(), earlier))

	assert.Equal(t, []uuid.UUID{later.ID, earlier.ID}, ids(svc.All()))
	require.Len(t, saved, 2)
	assert.Equal(t, []uuid.UUID{later.ID}, ids(saved[0]))
	assert.Equal(t, []uuid.UUID{later.ID, earlier.ID}, ids(saved[1]))
}

func TestService_Add_SaveErrorLeavesCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	repo.EXPECT().SaveTransactions(gomock.Any(), gomock.Any()).Return(errors.New("db error"))

	err := svc.Add(context.Background(), expense(10, "FOOD & DINING", "", "2024-06-01", ""))
	assert.Error(t, err)
	assert.Empty(t, svc.All())
}

func TestService_AddDelete_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	existing := []transaction.Transaction{
		expense(100, "FOOD & DINING", "Restaurants", "2024-05-01", "dinner"),
		income(5000, "SALARY", "2024-05-01", ""),
	}

	repo.EXPECT().LoadTransactions(gomock.Any()).Return(existing, nil)
	repo.EXPECT().SaveTransactions(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	svc.Load(context.Background())
	before := svc.All()

	tx := expense(42, "TRANSPORTATION", "Fuel", "2024-05-03", "")
	require.NoError(t, svc.Add(context.Background(), tx))
	assert.Equal(t, 3, svc.Len())

	require.NoError(t, svc.Delete(context.Background(), tx.ID))
	assert.Equal(t, before, svc.All())
}

func TestService_Delete_UnknownIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	repo.EXPECT().SaveTransactions(gomock.Any(), gomock.Any()).Times(0)

	assert.NoError(t, svc.Delete(context.Background(), uuid.New()))
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    transaction.CreateParams
		setupMock func(m *transaction.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: transaction.CreateParams{
				Amount:      decimal.NewFromInt(500),
				Type:        transaction.TypeExpense,
				Category:    "HOUSEHOLD & LIVING EXPENSES",
				SubCategory: "Groceries",
				Date:        "2024-05-01",
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().SaveTransactions(gomock.Any(), gomock.Len(1)).Return(nil)
			},
		},
		{
			name: "InvalidNeverPersists",
			params: transaction.CreateParams{
				Amount:   decimal.NewFromInt(-1),
				Type:     transaction.TypeExpense,
				Category: "HOUSEHOLD & LIVING EXPENSES",
				Date:     "2024-05-01",
			},
			setupMock: func(m *transaction.MockRepository) {},
			wantErr:   transaction.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				assert.Zero(t, svc.Len())

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, 1, svc.Len())
		})
	}
}

func TestService_ClearAndPurge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	gomock.InOrder(
		repo.EXPECT().SaveTransactions(gomock.Any(), gomock.Len(1)).Return(nil),
		repo.EXPECT().SaveTransactions(gomock.Any(), gomock.Len(0)).Return(nil),
		repo.EXPECT().SaveTransactions(gomock.Any(), gomock.Len(1)).Return(nil),
		repo.EXPECT().DeleteTransactions(gomock.Any()).Return(nil),
		repo.EXPECT().LoadTransactions(gomock.Any()).Return(nil, nil),
	)

	require.NoError(t, svc.Add(context.Background(), income(1, "SALARY", "2024-01-01", "")))
	require.NoError(t, svc.Clear(context.Background()))
	assert.Zero(t, svc.Len())

	require.NoError(t, svc.Add(context.Background(), income(1, "SALARY", "2024-01-01", "")))
	require.NoError(t, svc.Purge(context.Background()))
	assert.Zero(t, svc.Len())
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	tx := income(1, "SALARY", "2024-01-01", "")
	repo.EXPECT().LoadTransactions(gomock.Any()).Return([]transaction.Transaction{tx}, nil)
	svc.Load(context.Background())

	got, err := svc.Get(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, got.ID)

	_, err = svc.Get(uuid.New())
	assert.ErrorIs(t, err, transaction.ErrNotFound)
}

func TestService_Subscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	var sizes []int

	svc.Subscribe(func(txs []transaction.Transaction) {
		sizes = append(sizes, len(txs))
	})

	repo.EXPECT().SaveTransactions(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	tx := income(1, "SALARY", "2024-01-01", "")
	require.NoError(t, svc.Add(context.Background(), tx))
	require.NoError(t, svc.Delete(context.Background(), tx.ID))

	assert.Equal(t, []int{1, 0}, sizes)
}

func TestService_Subscribe_ConcurrentAddsDeliverInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().SaveTransactions(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := transaction.NewService(repo)

	// Deliveries are serialized by the service, so no lock is needed here.
	var sizes []int

	svc.Subscribe(func(txs []transaction.Transaction) {
		sizes = append(sizes, len(txs))
	})

	const n = 25

	var wg sync.WaitGroup

	for range n {
		wg.Add(1)

		go func() {
			defer wg.Done()
			assert.NoError(t, svc.Add(context.Background(), income(1, "SALARY", "2024-01-01", "")))
		}()
	}

	wg.Wait()

	require.Len(t, sizes, n)

	for i, size := range sizes {
		assert.Equal(t, i+1, size)
	}
}
