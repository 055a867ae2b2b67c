package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	repoMocks "couponweb/internal/repository/mocks"
	"couponweb/internal/storage"
	storeMocks "couponweb/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExportService_Export(t *testing.T) {
	ctx := context.Background()
	q := ListQuery{Status: FilterExpired}

	newSvc := func(store storage.Storage) ExportService {
		repo := new(repoMocks.MockCouponRepository)
		repo.On("List", ctx).Return(sampleCoupons(t), nil)
		return NewExportService(newTestCouponService(repo), store, fixedClock())
	}

	t.Run("uploads csv and presigns", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		var uploaded string
		store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "exports/alice/") && strings.HasSuffix(key, ".csv")
		}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.ContentType == "text/csv" && opt.Metadata["filter"] == "expired"
		})).Run(func(args mock.Arguments) {
			b, _ := io.ReadAll(args.Get(2).(io.Reader))
			uploaded = string(b)
		}).Return(storage.ObjectInfo{Key: "k"}, nil)
		store.On("PresignGet", ctx, mock.Anything, ExportLinkTTL).Return("https://minio/link", nil)

		res, err := newSvc(store).Export(ctx, "alice", q)
		require.NoError(t, err)
		assert.Equal(t, "https://minio/link", res.URL)
		assert.Equal(t, 1, res.Count)

		lines := strings.Split(strings.TrimSpace(uploaded), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "id,code,description"))
		assert.Equal(t, "3,OLD5,Old deal,Grocer,5,,2025-03-01,Expired,false,,2024-12-01", lines[1])
		store.AssertExpectations(t)
	})

	t.Run("presign failure removes the object", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
		store.On("PresignGet", ctx, mock.Anything, ExportLinkTTL).Return("", errors.New("sign fail"))
		store.On("Delete", ctx, mock.Anything).Return(nil)

		_, err := newSvc(store).Export(ctx, "alice", q)
		assert.EqualError(t, err, "presign export: sign fail")
		store.AssertExpectations(t)
	})

	t.Run("upload failure", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, errors.New("full"))

		_, err := newSvc(store).Export(ctx, "alice", q)
		assert.EqualError(t, err, "upload export: full")
		store.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("disabled without a store", func(t *testing.T) {
		svc := NewExportService(newTestCouponService(new(repoMocks.MockCouponRepository)), nil, fixedClock())
		_, err := svc.Export(ctx, "alice", q)
		assert.ErrorIs(t, err, ErrExportDisabled)
	})
}

func TestOwnerSegment(t *testing.T) {
	assert.Equal(t, "alice", ownerSegment("alice"))
	assert.Equal(t, "a_b", ownerSegment("a/b"))
	assert.Equal(t, "anonymous", ownerSegment(".."))
	assert.Equal(t, "anonymous", ownerSegment(""))
}
