package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "assetledger/internal/errors"
	"assetledger/internal/models"
	"assetledger/internal/pagination"
	"assetledger/internal/services"
)

// AssetHandler handles asset CRUD requests.
type AssetHandler struct {
	assetService services.AssetServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// FormValue is a scalar submitted either as a JSON string or number, or as a
// multipart form field. Numbers keep their literal text so decimals stay exact.
type FormValue string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FormValue) UnmarshalJSON(b []byte) error {
	switch {
	case string(b) == "null":
		*f = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FormValue(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*f = FormValue(n)
	}
	return nil
}

// AssetRequest is the create and edit payload. Every field is sent on edit;
// omitted optional fields are cleared.
type AssetRequest struct {
	Name        string    `json:"name" form:"name" binding:"required,max=255"`
	Category    string    `json:"category" form:"category" binding:"required,asset_category"`
	Value       FormValue `json:"value" form:"value" binding:"required"`
	Description string    `json:"description" form:"description"`
	StartDate   FormValue `json:"start_date" form:"start_date"`
	EndDate     FormValue `json:"end_date" form:"end_date"`

	Latitude  FormValue `json:"latitude" form:"latitude"`
	Longitude FormValue `json:"longitude" form:"longitude"`
	Area      FormValue `json:"area" form:"area"`
	AreaUnit  string    `json:"area_unit" form:"area_unit" binding:"area_unit"`

	WeightGrams FormValue `json:"weight_grams" form:"weight_grams"`
	GoldPurity  string    `json:"gold_purity" form:"gold_purity" binding:"gold_purity"`

	Units                FormValue `json:"units" form:"units"`
	PurchasePricePerUnit FormValue `json:"purchase_price_per_unit" form:"purchase_price_per_unit"`
	CurrentNAV           FormValue `json:"current_nav" form:"current_nav"`
	FolioNumber          string    `json:"folio_number" form:"folio_number" binding:"max=50"`

	SumAssured       FormValue `json:"sum_assured" form:"sum_assured"`
	PremiumAmount    FormValue `json:"premium_amount" form:"premium_amount"`
	PremiumFrequency string    `json:"premium_frequency" form:"premium_frequency" binding:"premium_frequency"`
	Nominee          string    `json:"nominee" form:"nominee" binding:"max=255"`

	InterestRate   FormValue `json:"interest_rate" form:"interest_rate"`
	MaturityAmount FormValue `json:"maturity_amount" form:"maturity_amount"`

	PolicyNumber string `json:"policy_number" form:"policy_number" binding:"max=100"`
	Institution  string `json:"institution" form:"institution" binding:"max=255"`
}

// ListAssetsQuery holds the optional list filters.
type ListAssetsQuery struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	MinValue string `form:"min_value"`
	MaxValue string `form:"max_value"`
}

// AssetResponse wraps a single asset.
type AssetResponse struct {
	Asset *models.Asset `json:"asset"`
}

// requestParser turns the loosely typed request scalars into typed values,
// collecting one message per bad field.
type requestParser map[string]string

func (p requestParser) decimal(field string, v FormValue) decimal.NullDecimal {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		p[field] = "Enter a number."
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func (p requestParser) date(field string, v FormValue) *time.Time {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		p[field] = "Enter a valid date."
		return nil
	}
	return &t
}

func (p requestParser) err() error {
	if len(p) == 0 {
		return nil
	}
	return apperrors.WithFields(apperrors.ErrValidation, p)
}

func (r *AssetRequest) toInput() (services.AssetInput, error) {
	p := requestParser{}
	category, _ := models.ParseAssetCategory(r.Category)
	in := services.AssetInput{
		Name:        r.Name,
		Category:    category,
		Value:       p.decimal("value", r.Value).Decimal,
		Description: r.Description,
		StartDate:   p.date("start_date", r.StartDate),
		EndDate:     p.date("end_date", r.EndDate),

		Latitude:  p.decimal("latitude", r.Latitude),
		Longitude: p.decimal("longitude", r.Longitude),
		Area:      p.decimal("area", r.Area),
		AreaUnit:  r.AreaUnit,

		WeightGrams: p.decimal("weight_grams", r.WeightGrams),
		GoldPurity:  r.GoldPurity,

		Units:                p.decimal("units", r.Units),
		PurchasePricePerUnit: p.decimal("purchase_price_per_unit", r.PurchasePricePerUnit),
		CurrentNAV:           p.decimal("current_nav", r.CurrentNAV),
		FolioNumber:          r.FolioNumber,

		SumAssured:       p.decimal("sum_assured", r.SumAssured),
		PremiumAmount:    p.decimal("premium_amount", r.PremiumAmount),
		PremiumFrequency: r.PremiumFrequency,
		Nominee:          r.Nominee,

		InterestRate:   p.decimal("interest_rate", r.InterestRate),
		MaturityAmount: p.decimal("maturity_amount", r.MaturityAmount),

		PolicyNumber: r.PolicyNumber,
		Institution:  r.Institution,
	}
	return in, p.err()
}

func (q *ListAssetsQuery) toFilter() (services.AssetFilter, error) {
	p := requestParser{}
	var filter services.AssetFilter
	if strings.TrimSpace(q.Category) != "" {
		category, ok := models.ParseAssetCategory(q.Category)
		if !ok {
			p["category"] = "Select a valid choice."
		}
		filter.Category = &category
	}
	filter.Search = strings.TrimSpace(q.Search)
	if d := p.decimal("min_value", FormValue(q.MinValue)); d.Valid {
		filter.MinValue = &d.Decimal
	}
	if d := p.decimal("max_value", FormValue(q.MaxValue)); d.Valid {
		filter.MaxValue = &d.Decimal
	}
	return filter, p.err()
}

// bindAssetRequest binds a JSON or multipart asset payload and its files.
func bindAssetRequest(c *gin.Context) (services.AssetInput, []services.FileUpload, error) {
	var req AssetRequest
	if err := c.ShouldBind(&req); err != nil {
		return services.AssetInput{}, nil, bindError(err)
	}
	input, err := req.toInput()
	if err != nil {
		return services.AssetInput{}, nil, err
	}
	files, err := uploadedFiles(c)
	if err != nil {
		return services.AssetInput{}, nil, err
	}
	return input, files, nil
}

// ListAssets handles listing the caller's assets.
// @Summary     List assets
// @Description Get a paginated, filtered list of the authenticated user's assets, newest first
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       category  query string false "Asset category"
// @Param       search    query string false "Case-insensitive name substring"
// @Param       min_value query string false "Minimum value"
// @Param       max_value query string false "Maximum value"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 12, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Asset] "Paginated assets"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/ [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	var query ListAssetsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	filter, err := query.toFilter()
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.assetService.ListAssets(c.Request.Context(), userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateAsset handles asset creation.
// @Summary     Create asset
// @Description Create an asset, optionally attaching documents sent as multipart "files"
// @Tags        assets
// @Accept      json,mpfd
// @Produce     json
// @Security    BearerAuth
// @Param       request body AssetRequest true "Asset details"
// @Success     201 {object} AssetResponse "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/create/ [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	input, files, err := bindAssetRequest(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), actor, input, files)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AssetResponse{Asset: asset})
}

// GetAsset handles retrieval of one asset.
// @Summary     Get asset
// @Description Get an asset with its documents
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} AssetResponse "Asset details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id}/ [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	assetID, err := parsePathID(c, "id", apperrors.ErrAssetNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.GetAsset(c.Request.Context(), userID, assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, AssetResponse{Asset: asset})
}

// UpdateAsset handles editing an asset.
// @Summary     Edit asset
// @Description Replace every field of an asset, optionally attaching more documents
// @Tags        assets
// @Accept      json,mpfd
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string       true "Asset ID"
// @Param       request body AssetRequest true "Asset details"
// @Success     200 {object} AssetResponse "Asset updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id}/edit/ [post]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	assetID, err := parsePathID(c, "id", apperrors.ErrAssetNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	input, files, err := bindAssetRequest(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.UpdateAsset(c.Request.Context(), actor, assetID, input, files)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, AssetResponse{Asset: asset})
}

// DeleteAsset handles deleting an asset and its documents.
// @Summary     Delete asset
// @Description Delete an asset together with its documents
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} MessageResponse "Asset deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id}/delete/ [post]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	assetID, err := parsePathID(c, "id", apperrors.ErrAssetNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assetService.DeleteAsset(c.Request.Context(), actor, assetID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Asset deleted"})
}
