// Package pokedex is a Go client for the first-generation Pokémon roster.
//
// The roster is fetched once from the public GraphQL API, cached in process
// (and optionally in Redis or Valkey), and queried locally: filtering,
// ordinal sorting and pagination never hit the network again until the
// cache expires.
//
// # Listing
//
//	client, _ := pokedex.New(ctx)
//	defer client.Close()
//
//	page, _ := client.Query().
//	    Type("Fire").
//	    Height("tall").
//	    Descending().
//	    Page(1).
//	    Do(ctx)
//
// # Detail and dashboard
//
//	detail, _ := client.Get(ctx, page.Items[0].ID)
//	board, _ := client.Dashboard(ctx, 0)
//	fmt.Println(board.Summary)
//
// # Shared cache
//
//	client, _ := pokedex.New(ctx,
//	    pokedex.WithValkey("localhost:6379", ""),
//	    pokedex.WithCacheTTL(30*time.Minute),
//	)
package pokedex
