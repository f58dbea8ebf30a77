package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidSample = New(
		"INVALID_SAMPLE",
		"Terrain sample contains non-finite values",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrGeocodeNotFound = New(
		"GEOCODE_NOT_FOUND",
		"Could not determine location for the given query",
		http.StatusNotFound,
	)

	ErrMissingReferenceData = New(
		"MISSING_REFERENCE_DATA",
		"Coastline reference dataset is empty or missing",
		http.StatusInternalServerError,
	)

	ErrUpstreamUnavailable = New(
		"UPSTREAM_DATA_UNAVAILABLE",
		"Could not fetch terrain data from upstream providers",
		http.StatusBadGateway,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrClassificationError = New(
		"CLASSIFICATION_ERROR",
		"Internal classification error",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
