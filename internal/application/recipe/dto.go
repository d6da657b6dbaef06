package recipe

import (
	"time"

	"github.com/cookbook/backend/internal/domain/recipe"
	"github.com/cookbook/backend/internal/domain/shared/valueobject"
)

// CreateInput represents a request to create a new recipe. Field values are
// validated by the domain layer so its error messages reach the caller
// unchanged; binding only guards the difficulty enum. Numeric fields bind
// as floats so fractional payloads reach the whole-number checks instead
// of dying in json decoding.
type CreateInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	PrepTime     float64  `json:"prepTime"`
	CookTime     float64  `json:"cookTime"`
	Servings     float64  `json:"servings"`
	Difficulty   string   `json:"difficulty" binding:"omitempty,difficulty"`
	Category     string   `json:"category"`
	ImageURL     string   `json:"imageUrl"`
}

// toParams converts the input into domain construction params, rejecting
// fractional time and servings values with the value objects' messages.
func (in CreateInput) toParams() (recipe.NewParams, error) {
	prepTime, err := valueobject.NewCookingTimeFromFloat(in.PrepTime)
	if err != nil {
		return recipe.NewParams{}, err
	}
	cookTime, err := valueobject.NewCookingTimeFromFloat(in.CookTime)
	if err != nil {
		return recipe.NewParams{}, err
	}
	servings, err := valueobject.NewServingsFromFloat(in.Servings)
	if err != nil {
		return recipe.NewParams{}, err
	}

	return recipe.NewParams{
		Name:         in.Name,
		Description:  in.Description,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		PrepTime:     prepTime.Minutes(),
		CookTime:     cookTime.Minutes(),
		Servings:     servings.Value(),
		Difficulty:   in.Difficulty,
		Category:     in.Category,
		ImageURL:     in.ImageURL,
	}, nil
}

// UpdateInput represents a partial update. Nil fields are left unchanged;
// a non-nil empty ImageURL clears the image.
type UpdateInput struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	PrepTime     *float64 `json:"prepTime"`
	CookTime     *float64 `json:"cookTime"`
	Servings     *float64 `json:"servings"`
	Difficulty   *string  `json:"difficulty" binding:"omitempty,difficulty"`
	Category     *string  `json:"category"`
	ImageURL     *string  `json:"imageUrl"`
}

// toPatch converts the input into a domain patch, rejecting fractional
// time and servings values with the value objects' messages.
func (in UpdateInput) toPatch() (recipe.Patch, error) {
	patch := recipe.Patch{
		Name:         in.Name,
		Description:  in.Description,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		Difficulty:   in.Difficulty,
		Category:     in.Category,
		ImageURL:     in.ImageURL,
	}

	if in.PrepTime != nil {
		t, err := valueobject.NewCookingTimeFromFloat(*in.PrepTime)
		if err != nil {
			return recipe.Patch{}, err
		}
		minutes := t.Minutes()
		patch.PrepTime = &minutes
	}
	if in.CookTime != nil {
		t, err := valueobject.NewCookingTimeFromFloat(*in.CookTime)
		if err != nil {
			return recipe.Patch{}, err
		}
		minutes := t.Minutes()
		patch.CookTime = &minutes
	}
	if in.Servings != nil {
		sv, err := valueobject.NewServingsFromFloat(*in.Servings)
		if err != nil {
			return recipe.Patch{}, err
		}
		count := sv.Value()
		patch.Servings = &count
	}
	return patch, nil
}

// RecipeResponse represents a recipe in API responses
type RecipeResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	PrepTime     int       `json:"prepTime"`
	CookTime     int       `json:"cookTime"`
	TotalTime    int       `json:"totalTime"`
	Servings     int       `json:"servings"`
	Difficulty   string    `json:"difficulty"`
	Category     string    `json:"category"`
	ImageURL     *string   `json:"imageUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toResponse(r *recipe.Recipe) *RecipeResponse {
	resp := &RecipeResponse{
		ID:           r.ID(),
		Name:         r.Name().Value(),
		Description:  r.Description(),
		Ingredients:  r.Ingredients(),
		Instructions: r.Instructions(),
		PrepTime:     r.PrepTime().Minutes(),
		CookTime:     r.CookTime().Minutes(),
		TotalTime:    r.PrepTime().Minutes() + r.CookTime().Minutes(),
		Servings:     r.Servings().Value(),
		Difficulty:   r.Difficulty().Value(),
		Category:     r.Category().Value(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
	if url := r.ImageURL(); url != "" {
		resp.ImageURL = &url
	}
	return resp
}

func toResponses(recipes []*recipe.Recipe) []*RecipeResponse {
	responses := make([]*RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		responses = append(responses, toResponse(r))
	}
	return responses
}
