package response

import (
	"time"

	"library-lending/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LedgerEntryResponse struct {
	ID           string    `json:"id"`
	BookID       string    `json:"bookId"`
	BookISBN     string    `json:"bookIsbn,omitempty"`
	BookName     string    `json:"bookName,omitempty"`
	CustomerName string    `json:"customerName"`
	Action       string    `json:"action"`
	OccurredAt   time.Time `json:"occurredAt"`
}

type LedgerPageResponse struct {
	Records    []*LedgerEntryResponse `json:"records"`
	NextCursor string                 `json:"nextCursor,omitempty"`
}

var copyOptions = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: uuid.UUID{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(uuid.UUID).String(), nil
			},
		},
	},
}

func FromLedgerList(items []*queries.LedgerEntryView) ([]*LedgerEntryResponse, error) {
	res := make([]*LedgerEntryResponse, 0, len(items))
	for _, it := range items {
		r := &LedgerEntryResponse{}
		if err := copier.CopyWithOption(r, it, copyOptions); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}
