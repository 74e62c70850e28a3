package bgg

import "time"

const (
	providerName = "bgg"

	defaultBaseURL     = "https://api.geekdo.com/xmlapi"
	defaultHTTPTimeout = 30 * time.Second

	// collectionUsername is the only collection this tool tracks.
	collectionUsername = "ffsjake"
	ownedOnlyParam     = "own"

	// BGG answers 202 while it prepares the export; one wait then one more request.
	acceptedRetryDelay = 10 * time.Second
)
