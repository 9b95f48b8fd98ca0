package response

import (
	"time"

	"library-lending/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type BookResponse struct {
	ID                string    `json:"id"`
	ISBN              string    `json:"isbn"`
	Name              string    `json:"name"`
	Author            string    `json:"author"`
	PublicationYear   int       `json:"publicationYear"`
	AvailableQuantity int       `json:"availableQuantity"`
	Version           int64     `json:"version"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func FromBookView(v *queries.BookView) (*BookResponse, error) {
	res := &BookResponse{}
	if err := copier.CopyWithOption(res, v, copyOptions); err != nil {
		return nil, err
	}
	return res, nil
}

func FromBookList(items []*queries.BookView) ([]*BookResponse, error) {
	res := make([]*BookResponse, 0, len(items))
	for _, it := range items {
		r, err := FromBookView(it)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}
