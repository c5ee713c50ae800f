package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/zentracker/internal/kv"
	"github.com/MrJamesThe3rd/zentracker/internal/kv/memory"
	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
	"github.com/MrJamesThe3rd/zentracker/internal/transaction/store"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.New(memory.New())

	txs, err := s.LoadTransactions(ctx)
	require.NoError(t, err)
	assert.Nil(t, txs)

	want := []transaction.Transaction{
		{
			ID:          uuid.New(),
			Amount:      decimal.RequireFromString("499.99"),
			Type:        transaction.TypeExpense,
			Category:    "HOUSEHOLD & LIVING EXPENSES",
			SubCategory: "Groceries",
			Date:        "2024-05-01",
			Note:        "weekly shop",
		},
		{
			ID:       uuid.New(),
			Amount:   decimal.NewFromInt(50000),
			Type:     transaction.TypeIncome,
			Category: "SALARY",
			Date:     "2024-04-30",
		},
	}

	require.NoError(t, s.SaveTransactions(ctx, want))

	got, err := s.LoadTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.True(t, want[i].Amount.Equal(got[i].Amount))
		assert.Equal(t, want[i].SubCategory, got[i].SubCategory)
		assert.Equal(t, want[i].Date, got[i].Date)
	}

	require.NoError(t, s.DeleteTransactions(ctx))

	got, err = s.LoadTransactions(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_SaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	slots := memory.New()

	require.NoError(t, store.New(slots).SaveTransactions(ctx, nil))

	raw, err := slots.Get(ctx, kv.KeyTransactions)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestStore_Malformed(t *testing.T) {
	ctx := context.Background()
	slots := memory.New()
	require.NoError(t, slots.Put(ctx, kv.KeyTransactions, []byte("{not json")))

	_, err := store.New(slots).LoadTransactions(ctx)
	assert.ErrorIs(t, err, transaction.ErrMalformed)
}

func TestStore_InvariantViolations(t *testing.T) {
	const id = `"6f1c5a4e-5a53-4b59-9d38-0c4d9e0b4d11"`

	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "NegativeAmount",
			payload: `[{"id":` + id + `,"amount":-500,"type":"EXPENSE","category":"FOOD & DINING","date":"2024-05-01"}]`,
		},
		{
			name:    "UnknownType",
			payload: `[{"id":` + id + `,"amount":5,"type":"BOGUS","category":"FOOD & DINING","date":"2024-05-01"}]`,
		},
		{
			name:    "IncomeWithSubCategory",
			payload: `[{"id":` + id + `,"amount":5,"type":"INCOME","category":"SALARY","subCategory":"Groceries","date":"2024-05-01"}]`,
		},
		{
			name:    "BadDate",
			payload: `[{"id":` + id + `,"amount":5,"type":"INCOME","category":"SALARY","date":"yesterday"}]`,
		},
		{
			name:    "MissingID",
			payload: `[{"amount":5,"type":"INCOME","category":"SALARY","date":"2024-05-01"}]`,
		},
		{
			name: "DuplicateID",
			payload: `[{"id":` + id + `,"amount":5,"type":"INCOME","category":"SALARY","date":"2024-05-01"},` +
				`{"id":` + id + `,"amount":7,"type":"INCOME","category":"SALARY","date":"2024-05-02"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			slots := memory.New()
			require.NoError(t, slots.Put(ctx, kv.KeyTransactions, []byte(tt.payload)))

			_, err := store.New(slots).LoadTransactions(ctx)
			assert.ErrorIs(t, err, transaction.ErrMalformed)

			svc := transaction.NewService(store.New(slots))
			svc.Load(ctx)
			assert.Zero(t, svc.Len())
		})
	}
}

func TestStore_ReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	slots := kv.NewMockStore(ctrl)
	slots.EXPECT().Get(gomock.Any(), kv.KeyTransactions).Return(nil, errors.New("io error"))

	_, err := store.New(slots).LoadTransactions(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, transaction.ErrMalformed)
}

func TestService_LoadsFromSlots(t *testing.T) {
	ctx := context.Background()
	slots := memory.New()

	first := transaction.NewService(store.New(slots))
	first.Load(ctx)

	created, err := first.Create(ctx, transaction.CreateParams{
		Amount:   decimal.NewFromInt(2500),
		Type:     transaction.TypeIncome,
		Category: "FREELANCE",
		Date:     "2024-05-02",
	})
	require.NoError(t, err)

	second := transaction.NewService(store.New(slots))
	second.Load(ctx)

	all := second.All()
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)
}
