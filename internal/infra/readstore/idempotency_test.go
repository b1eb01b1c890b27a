//go:build unit

package readstore_test

import (
	"context"
	"testing"
	"time"

	"court-scheduler/internal/infra"
	"court-scheduler/internal/infra/query"
	"court-scheduler/internal/infra/readstore"
	"court-scheduler/internal/pkg/pgconv"
	readstoremock "court-scheduler/tests/mock/readstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestIdempotencyReadStore_Get(t *testing.T) {
	ctx := context.Background()
	key := uuid.New()
	userID := uuid.New()
	resultID := uuid.New()
	expiresAt := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		row        query.IdempotencyKeys
		err        error
		expectKind infra.RepositoryErrorKind
		wantResult *uuid.UUID
	}{
		{
			name: "success: completed key carries its result",
			row: query.IdempotencyKeys{
				Key:                 key,
				UserID:              userID,
				Status:              "completed",
				RequestHash:         "abc",
				ResultReservationID: pgconv.UUIDToPgtype(resultID),
				ExpiresAt:           pgconv.TimeToPgtype(expiresAt),
			},
			wantResult: &resultID,
		},
		{
			name: "success: processing key has no result",
			row: query.IdempotencyKeys{
				Key:                 key,
				UserID:              userID,
				Status:              "processing",
				RequestHash:         "abc",
				ResultReservationID: pgtype.UUID{},
				ExpiresAt:           pgconv.TimeToPgtype(expiresAt),
			},
		},
		{
			name:       "error: key not found",
			err:        pgx.ErrNoRows,
			expectKind: infra.KindNotFound,
		},
		{
			name:       "error: database error",
			err:        errDBConnectionLost,
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := readstoremock.NewMockIdempotencyReadQueries(ctrl)
			tx := &mockDBTX{}
			mockQueries.EXPECT().GetIdempotencyKey(ctx, tx, key, userID).Return(tc.row, tc.err)

			record, err := readstore.NewIdempotencyReadStore(mockQueries).Get(ctx, tx, key, userID)

			if tc.err != nil {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, key, record.Key)
			assert.Equal(t, tc.row.Status, record.Status)
			assert.Equal(t, "abc", record.RequestHash)
			assert.Equal(t, tc.wantResult, record.ResultReservationID)
			assert.True(t, expiresAt.Equal(record.ExpiresAt))
			assert.False(t, record.Expired(expiresAt.Add(-time.Second)))
			assert.True(t, record.Expired(expiresAt))
		})
	}
}
