package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"innkeep/pkg/config"
	apperrors "innkeep/pkg/errors"
	"io"
	"net/http"
	"strconv"

	"cloud.google.com/go/civil"
)

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64 = 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}

// ExtractDate reads a required YYYY-MM-DD query parameter.
func ExtractDate(r *http.Request, name string) (civil.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return civil.Date{}, apperrors.InvalidInput(fmt.Sprintf("missing %s parameter", name))
	}
	d, err := civil.ParseDate(raw)
	if err != nil {
		return civil.Date{}, apperrors.InvalidInput(fmt.Sprintf("invalid %s parameter, expected YYYY-MM-DD: %s", name, raw))
	}
	return d, nil
}

// DecodeJSON decodes the request body into dst, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.InvalidInput("Request body is empty")
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperrors.RequestTooLarge(tooLarge.Limit)
		}
		return apperrors.InvalidInput("Invalid JSON body: " + err.Error())
	}
	return nil
}
