package favorites

import "github.com/jonathan/career-pipeline/internal/types"

type favoriteResponse struct {
	ID        types.Count `json:"id"`
	Title     types.Text  `json:"title"`
	URN       types.Text  `json:"urn"`
	Company   types.Text  `json:"company"`
	Location  types.Text  `json:"location"`
	ApplyLink types.Text  `json:"apply_link"`
	Source    types.Text  `json:"source"`
	CreatedAt types.Text  `json:"created_at"`
}

func (f favoriteResponse) favorite() types.Favorite {
	return types.Favorite{
		ID:        int64(f.ID),
		Title:     f.Title.String(),
		URN:       f.URN.String(),
		Company:   f.Company.String(),
		Location:  f.Location.String(),
		ApplyLink: f.ApplyLink.String(),
		Source:    f.Source.String(),
		CreatedAt: f.CreatedAt.String(),
	}
}
