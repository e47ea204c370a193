// Package catalogue provides a client for course-catalogue services that
// expose departments and their courses over a JSON API.
//
// The client produces the raw entry mapping the catalog builder consumes:
// course code to raw prerequisite text. Responses are cached on disk so
// repeated fetches of a large catalogue don't hammer the service.
//
// # Usage
//
//	client, err := catalogue.NewClient("https://catalogue.example.edu/api", 24*time.Hour)
//	if err != nil {
//	    return err
//	}
//	entries, err := client.FetchCatalog(ctx, []string{"CS", "MATH"}, false)
package catalogue
