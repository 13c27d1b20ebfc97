// Package titledex is the embedded client: the full similarity pipeline and
// corpus storage wired against a local or remote store, without running the
// HTTP server.
//
// Basic usage:
//
//	client, err := titledex.New(ctx, titledex.WithBadger(""))
//	if err != nil { ... }
//	defer client.Close()
//
//	_, err = client.Corpora().Replace(ctx, "capstones", titles)
//	res, err := client.Check(ctx, "capstones", "Machine Learning in Healthcare Systems", 3)
package titledex
