package dto

import (
	"net/http"
	"rentopia/internal/domains/place/model"
	"rentopia/shared"
	"rentopia/shared/constant"
	gDto "rentopia/shared/dto"
	gModel "rentopia/shared/model"
	"rentopia/shared/timezone"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	queryParamSearch       = "search"
	queryParamPropertyType = "property_type"
	queryParamMaxPrice     = "max_price"
	queryParamGuests       = "guests"
)

// PlaceRequest is shared by create and update. Id is only read on update.
type PlaceRequest struct {
	ID           string   `json:"id"           validate:"omitempty,uuid"`
	Title        string   `json:"title"        validate:"required,max=200"`
	Address      string   `json:"address"      validate:"required,max=500"`
	AddedPhotos  []string `json:"addedPhotos"  validate:"omitempty,max=100,dive,url"`
	Description  string   `json:"description"  validate:"omitempty,max=5000"`
	Perks        []string `json:"perks"        validate:"omitempty,dive,max=50"`
	ExtraInfo    string   `json:"extraInfo"    validate:"omitempty,max=5000"`
	CheckIn      string   `json:"checkIn"      validate:"omitempty,max=20"`
	CheckOut     string   `json:"checkOut"     validate:"omitempty,max=20"`
	MaxGuests    int      `json:"maxGuests"    validate:"required,min=1,max=100"`
	Price        float64  `json:"price"        validate:"required,gt=0"`
	PropertyType string   `json:"propertyType" validate:"omitempty,oneof=1RK 1BHK 2BHK 3BHK Villa"`
}

func (r *PlaceRequest) ToModel(ownerID string) model.Place {
	now := timezone.Now()

	return model.Place{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Title:        strings.TrimSpace(r.Title),
		Address:      strings.TrimSpace(r.Address),
		Photos:       nonNil(r.AddedPhotos),
		Description:  r.Description,
		Perks:        nonNil(r.Perks),
		ExtraInfo:    r.ExtraInfo,
		CheckIn:      r.CheckIn,
		CheckOut:     r.CheckOut,
		MaxGuests:    r.MaxGuests,
		Price:        r.Price,
		PropertyType: r.PropertyType,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  ownerID,
			ModifiedBy: ownerID,
		},
	}
}

// ToUpdateMap replaces every editable column. Owner and id are never written.
func (r *PlaceRequest) ToUpdateMap(modifiedBy string) map[string]any {
	return map[string]any{
		model.FieldTitle:         strings.TrimSpace(r.Title),
		model.FieldAddress:       strings.TrimSpace(r.Address),
		model.FieldPhotos:        nonNil(r.AddedPhotos),
		model.FieldDescription:   r.Description,
		model.FieldPerks:         nonNil(r.Perks),
		model.FieldExtraInfo:     r.ExtraInfo,
		model.FieldCheckIn:       r.CheckIn,
		model.FieldCheckOut:      r.CheckOut,
		model.FieldMaxGuests:     r.MaxGuests,
		model.FieldPrice:         r.Price,
		model.FieldPropertyType:  r.PropertyType,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: modifiedBy,
	}
}

func nonNil(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}

	return pq.StringArray(values)
}

type PlaceResponse struct {
	ID           string   `json:"_id"`
	Owner        string   `json:"owner"`
	Title        string   `json:"title"`
	Address      string   `json:"address"`
	Photos       []string `json:"photos"`
	Description  string   `json:"description"`
	Perks        []string `json:"perks"`
	ExtraInfo    string   `json:"extraInfo"`
	CheckIn      string   `json:"checkIn"`
	CheckOut     string   `json:"checkOut"`
	MaxGuests    int      `json:"maxGuests"`
	Price        float64  `json:"price"`
	PropertyType string   `json:"propertyType,omitempty"`
	gDto.Metadata
}

func (r *PlaceResponse) FromModel(m model.Place) {
	r.ID = m.ID
	r.Owner = m.OwnerID
	r.Title = m.Title
	r.Address = m.Address
	r.Photos = append([]string{}, m.Photos...)
	r.Description = m.Description
	r.Perks = append([]string{}, m.Perks...)
	r.ExtraInfo = m.ExtraInfo
	r.CheckIn = m.CheckIn
	r.CheckOut = m.CheckOut
	r.MaxGuests = m.MaxGuests
	r.Price = m.Price
	r.PropertyType = m.PropertyType
	r.Metadata.FromModel(m.Metadata)
}

// FromModelForListing is FromModel with photos cut to the listing preview size.
func (r *PlaceResponse) FromModelForListing(m model.Place) {
	r.FromModel(m)

	if len(r.Photos) > model.ListingPhotoLimit {
		r.Photos = r.Photos[:model.ListingPhotoLimit]
	}
}

type GetPlacesResponse struct {
	Places    []PlaceResponse `json:"places"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetPlacesResponse) FromModels(models []model.Place, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Places = make([]PlaceResponse, len(models))
	for i, mod := range models {
		r.Places[i].FromModelForListing(mod)
	}
}

type ListQuery struct {
	Search       string
	PropertyType string
	MaxPrice     *float64
	Guests       *int
	gDto.QueryParams
}

func (q *ListQuery) FromRequest(r *http.Request) {
	query := r.URL.Query()

	q.Search = strings.TrimSpace(query.Get(queryParamSearch))
	q.PropertyType = strings.TrimSpace(query.Get(queryParamPropertyType))

	if v, err := strconv.ParseFloat(query.Get(queryParamMaxPrice), 64); err == nil && v > 0 {
		q.MaxPrice = &v
	}

	if v, err := strconv.Atoi(query.Get(queryParamGuests)); err == nil && v > 0 {
		q.Guests = &v
	}

	q.QueryParams.FromRequest(r)
}

// ToFilter turns the optional listing filters into a where clause. An empty query matches everything.
func (q *ListQuery) ToFilter() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if q.Search != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{Field: model.FieldTitle, ArgName: "search_title", Operator: gDto.FilterOperatorLike, Value: q.Search, Table: model.TableName},
				gDto.Filter{Field: model.FieldAddress, ArgName: "search_address", Operator: gDto.FilterOperatorLike, Value: q.Search, Table: model.TableName},
			},
		})
	}

	if q.PropertyType != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldPropertyType, Operator: gDto.FilterOperatorEq, Value: q.PropertyType, Table: model.TableName,
		})
	}

	if q.MaxPrice != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldPrice, Operator: gDto.FilterOperatorLessEq, Value: *q.MaxPrice, Table: model.TableName,
		})
	}

	if q.Guests != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldMaxGuests, Operator: gDto.FilterOperatorGreaterEq, Value: *q.Guests, Table: model.TableName,
		})
	}

	return filter
}
