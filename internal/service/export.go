package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"couponweb/internal/storage"
)

// ErrExportDisabled is returned when no object store is configured.
var ErrExportDisabled = errors.New("export storage is not configured")

// ExportLinkTTL is how long a presigned export link stays valid.
const ExportLinkTTL = 15 * time.Minute

var exportHeader = []string{"id", "code", "description", "store", "discountPercentage", "category", "expiryDate", "status", "isUsed", "notes", "createdAt"}

// ExportResult describes an uploaded CSV export.
type ExportResult struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// ExportService uploads coupon lists as CSV files.
type ExportService interface {
	// Export writes the list selected by q for owner and returns a download link.
	Export(ctx context.Context, owner string, q ListQuery) (*ExportResult, error)
}

type exportService struct {
	coupons CouponService
	store   storage.Storage
	now     Clock
}

// NewExportService constructs an ExportService. A nil store yields a service
// that always returns ErrExportDisabled.
func NewExportService(coupons CouponService, store storage.Storage, now Clock) ExportService {
	if now == nil {
		now = time.Now
	}
	return &exportService{coupons: coupons, store: store, now: now}
}

func (s *exportService) Export(ctx context.Context, owner string, q ListQuery) (*ExportResult, error) {
	if s.store == nil {
		return nil, ErrExportDisabled
	}
	list, err := s.coupons.List(ctx, q)
	if err != nil {
		return nil, err
	}

	body, err := encodeCSV(list.Items)
	if err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}

	key := path.Join("exports", ownerSegment(owner), uuid.New().String()+".csv")
	if _, err := s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "text/csv",
		Metadata: map[string]string{
			"exported-at": s.now().UTC().Format(time.RFC3339),
			"filter":      string(list.Query.Status),
		},
	}); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, ExportLinkTTL)
	if err != nil {
		// Rollback: nobody can download the object without a link.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("presign failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("presign export: %w", err)
	}
	return &ExportResult{Key: key, URL: url, Count: len(list.Items)}, nil
}

func encodeCSV(items []CouponView) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, v := range items {
		var expiry, created string
		if v.HasExpiry() {
			expiry = v.ExpiryDate.String()
		}
		if v.CreatedAt != nil {
			created = v.CreatedAt.String()
		}
		rec := []string{
			v.ID.String(),
			v.Code,
			v.Description,
			v.Store,
			strconv.FormatFloat(v.DiscountPercentage, 'f', -1, 64),
			v.Category,
			expiry,
			v.StatusLabel,
			strconv.FormatBool(v.IsUsed),
			v.Notes,
			created,
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ownerSegment makes a username safe to use as a single object key segment.
func ownerSegment(owner string) string {
	seg := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, owner)
	if strings.Trim(seg, ".") == "" {
		return "anonymous"
	}
	return seg
}
