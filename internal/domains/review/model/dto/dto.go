package dto

import (
	placeModel "rentopia/internal/domains/place/model"
	"rentopia/internal/domains/review/model"
	"rentopia/shared"
	"rentopia/shared/constant"
	gModel "rentopia/shared/model"
	"rentopia/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	ReasonBookingNotFound     = "Booking not found"
	ReasonNotYourBooking      = "Not your booking"
	ReasonCheckoutNotPassed   = "Checkout date not passed"
	ReasonBookingNotConfirmed = "Booking not confirmed"
	ReasonAlreadyReviewed     = "Already reviewed"

	unnamedPlace  = "Unnamed Property"
	ratingDecimal = 1
)

type CreateReviewRequest struct {
	Booking       string `json:"booking"       validate:"required,uuid"`
	Rating        int    `json:"rating"        validate:"required,min=1,max=5"`
	Comment       string `json:"comment"       validate:"omitempty,max=2000"`
	Cleanliness   *int   `json:"cleanliness"   validate:"omitempty,min=1,max=5"`
	Communication *int   `json:"communication" validate:"omitempty,min=1,max=5"`
	Location      *int   `json:"location"      validate:"omitempty,min=1,max=5"`
	Value         *int   `json:"value"         validate:"omitempty,min=1,max=5"`
}

func (r *CreateReviewRequest) ToModel(userID, placeID string, now time.Time) model.Review {
	bookingID := r.Booking

	return model.Review{
		ID:            uuid.NewString(),
		PlaceID:       placeID,
		UserID:        userID,
		BookingID:     &bookingID,
		Rating:        r.Rating,
		Cleanliness:   r.Cleanliness,
		Communication: r.Communication,
		Location:      r.Location,
		Value:         r.Value,
		Comment:       strings.TrimSpace(r.Comment),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type Reviewer struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

type ReviewResponse struct {
	ID            string   `json:"_id"`
	Place         string   `json:"place"`
	User          Reviewer `json:"user"`
	Booking       *string  `json:"booking,omitempty"`
	Rating        int      `json:"rating"`
	Cleanliness   *int     `json:"cleanliness,omitempty"`
	Communication *int     `json:"communication,omitempty"`
	Location      *int     `json:"location,omitempty"`
	Value         *int     `json:"value,omitempty"`
	Comment       string   `json:"comment"`
	CreatedAt     string   `json:"createdAt"`
}

func (r *ReviewResponse) FromModel(m model.Review) {
	r.ID = m.ID
	r.Place = m.PlaceID
	r.User = Reviewer{ID: m.UserID}
	r.Booking = m.BookingID
	r.Rating = m.Rating
	r.Cleanliness = m.Cleanliness
	r.Communication = m.Communication
	r.Location = m.Location
	r.Value = m.Value
	r.Comment = m.Comment
	r.CreatedAt = timezone.Format(m.CreatedAt, constant.DateFormat)
}

func (r *ReviewResponse) FromModelWithUser(m model.ReviewWithUser) {
	r.FromModel(m.Review)
	r.User.Name = m.UserName
}

func FromModelsWithUser(models []model.ReviewWithUser) []ReviewResponse {
	res := make([]ReviewResponse, len(models))
	for i, m := range models {
		res[i].FromModelWithUser(m)
	}

	return res
}

// Eligibility is the tri-state answer of can-review: eligible, a reason, or the existing review.
type Eligibility struct {
	CanReview bool            `json:"canReview"`
	Reason    string          `json:"reason,omitempty"`
	Review    *ReviewResponse `json:"review,omitempty"`
}

type PlaceSummary struct {
	ID      string   `json:"_id"`
	Title   string   `json:"title"`
	Address string   `json:"address"`
	Photos  []string `json:"photos"`
}

type PlaceFeedback struct {
	Place         PlaceSummary     `json:"place"`
	Reviews       []ReviewResponse `json:"reviews"`
	ReviewCount   int              `json:"reviewCount"`
	AverageRating float64          `json:"averageRating"`
}

type OwnerFeedbackResponse struct {
	Places        []PlaceFeedback `json:"places"`
	TotalReviews  int             `json:"totalReviews"`
	AverageRating float64         `json:"averageRating"`
}

// FromModels groups reviews under the owner's places, keeping the places' order.
func (r *OwnerFeedbackResponse) FromModels(places []placeModel.Place, reviews []model.ReviewWithUser) {
	byPlace := make(map[string][]ReviewResponse, len(places))
	total := 0

	for _, review := range reviews {
		var res ReviewResponse
		res.FromModelWithUser(review)

		byPlace[review.PlaceID] = append(byPlace[review.PlaceID], res)
		total += review.Rating
	}

	r.Places = make([]PlaceFeedback, len(places))

	for i, place := range places {
		placeReviews := byPlace[place.ID]
		if placeReviews == nil {
			placeReviews = []ReviewResponse{}
		}

		title := place.Title
		if title == constant.Empty {
			title = unnamedPlace
		}

		r.Places[i] = PlaceFeedback{
			Place: PlaceSummary{
				ID:      place.ID,
				Title:   title,
				Address: place.Address,
				Photos:  append([]string{}, place.Photos...),
			},
			Reviews:       placeReviews,
			ReviewCount:   len(placeReviews),
			AverageRating: averageRating(placeReviews),
		}
	}

	r.TotalReviews = len(reviews)
	if r.TotalReviews > 0 {
		r.AverageRating = shared.Round(float64(total)/float64(r.TotalReviews), ratingDecimal)
	}
}

func averageRating(reviews []ReviewResponse) float64 {
	if len(reviews) == 0 {
		return 0
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}

	return shared.Round(float64(sum)/float64(len(reviews)), ratingDecimal)
}
