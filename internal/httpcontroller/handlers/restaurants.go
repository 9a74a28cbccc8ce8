// restaurants.go: handlers for the restaurant directory pages
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tastebase/tastebase/internal/datastore"
	"github.com/tastebase/tastebase/internal/directory"
	"github.com/tastebase/tastebase/internal/errors"
)

// DetailsPageData carries the detail page's render state. Restaurant is nil
// when the id is unknown; the page still renders.
type DetailsPageData struct {
	Restaurant   *datastore.Restaurant
	Reviews      []datastore.Review
	Summary      directory.RatingSummary
	ErrorMessage string
}

// CreatePageData carries the submission form's render state.
type CreatePageData struct {
	ErrorMessage string
}

// CreateRestaurantForm renders the blank restaurant submission form.
func (h *Handlers) CreateRestaurantForm(c echo.Context) error {
	return c.Render(http.StatusOK, "create_restaurant", CreatePageData{})
}

// AddRestaurant validates the submitted form fields and inserts a new
// restaurant, then redirects to its detail page. Missing fields re-render
// the form with an error instead of inserting empty rows.
func (h *Handlers) AddRestaurant(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("restaurant_name"))
	streetAddress := strings.TrimSpace(c.FormValue("street_address"))
	description := strings.TrimSpace(c.FormValue("description"))

	if name == "" || streetAddress == "" || description == "" {
		return c.Render(http.StatusBadRequest, "create_restaurant", CreatePageData{
			ErrorMessage: "You must include a restaurant name, address, and description",
		})
	}

	restaurant := &datastore.Restaurant{
		Name:          name,
		StreetAddress: streetAddress,
		Description:   description,
	}
	if err := h.DS.SaveRestaurant(restaurant); err != nil {
		h.logger.Error("Failed to save restaurant", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save restaurant")
	}

	h.logger.Info("Restaurant added", "restaurant_id", restaurant.ID, "name", restaurant.Name)
	return c.Redirect(http.StatusFound, fmt.Sprintf("/restaurants/%d", restaurant.ID))
}

// RestaurantDetails renders a restaurant's detail page with its reviews and
// the read-time rating aggregate. An unknown id renders an empty record
// rather than a 404; a non-numeric id is a routing miss.
func (h *Handlers) RestaurantDetails(c echo.Context) error {
	id := c.Param("id")
	if _, err := strconv.ParseUint(id, 10, 32); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "page not found")
	}

	data, err := h.detailsData(id)
	if err != nil {
		h.logger.Error("Failed to load restaurant details", "restaurant_id", id, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load restaurant")
	}

	return c.Render(http.StatusOK, "details", data)
}

// AddReview validates and inserts a review for the given restaurant, then
// redirects back to the detail page.
func (h *Handlers) AddReview(c echo.Context) error {
	id := c.Param("id")
	restaurantID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "page not found")
	}

	userName := strings.TrimSpace(c.FormValue("user_name"))
	ratingRaw := strings.TrimSpace(c.FormValue("rating"))
	reviewText := strings.TrimSpace(c.FormValue("review_text"))

	renderError := func(message string) error {
		data, derr := h.detailsData(id)
		if derr != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to load restaurant")
		}
		data.ErrorMessage = message
		return c.Render(http.StatusBadRequest, "details", data)
	}

	if userName == "" || ratingRaw == "" || reviewText == "" {
		return renderError("A name, rating, and review text are required")
	}

	rating, err := strconv.Atoi(ratingRaw)
	if err != nil || rating < 1 || rating > 5 {
		return renderError("Rating must be a whole number between 1 and 5")
	}

	review := &datastore.Review{
		RestaurantID: uint(restaurantID),
		UserName:     userName,
		Rating:       &rating,
		ReviewText:   reviewText,
		ReviewDate:   time.Now(),
	}
	if err := h.DS.SaveReview(review); err != nil {
		h.logger.Error("Failed to save review", "restaurant_id", id, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save review")
	}

	return c.Redirect(http.StatusFound, fmt.Sprintf("/restaurants/%s", id))
}

// detailsData loads the detail page state. An unknown restaurant id leaves
// Restaurant nil; the page renders an empty record.
func (h *Handlers) detailsData(id string) (DetailsPageData, error) {
	data := DetailsPageData{}

	restaurant, err := h.DS.GetRestaurant(id)
	switch {
	case err == nil:
		data.Restaurant = &restaurant
	case errors.HasCategory(err, errors.CategoryNotFound):
		// keep nil
	default:
		return data, err
	}

	reviews, err := h.DS.GetReviews(id)
	if err != nil {
		return data, err
	}
	data.Reviews = reviews
	data.Summary = directory.Summarize(reviews)
	return data, nil
}
