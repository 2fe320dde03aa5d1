// Package vetdir provides an embedded Go client for the vetdir business
// directory, wired directly to the Redis store without going through the
// HTTP API. It is meant for ingest tooling and batch jobs that load and
// search listings in-process.
//
//	client, _ := vetdir.New(vetdir.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	_ = client.Businesses().Upsert(ctx, vetdir.Business{
//	    ID:        42,
//	    Name:      "Smith Plumbing Services",
//	    Status:    "approved",
//	    OwnerTier: "veteran",
//	    City:      "Dallas",
//	    State:     "TX",
//	})
//
//	res, _ := client.Search(ctx, vetdir.SearchRequest{Query: "plumbing"})
//
// The embedded client has no geocoding provider: location inputs resolve
// only when given as "lat,lng" coordinates, otherwise they fall back to
// text matching on city, state and areas served.
package vetdir
