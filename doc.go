// Package sharepoint provides a typed Go client for the SharePoint REST API.
//
// The client models the site/web hierarchy as chained resource references.
// Each accessor returns a new immutable reference that remembers its place in
// the remote resource tree; no network I/O happens until a terminal verb
// method (Get, Update, Delete, ...) is invoked with a context.
//
// # Quick Start
//
// Create a client and read the root web:
//
//	client, err := sharepoint.New(
//	    "https://contoso.sharepoint.com/sites/dev",
//	    sharepoint.WithAccessToken(os.Getenv("SHAREPOINT_ACCESS_TOKEN")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	web, err := client.Web().Select("Title", "Url").Get(ctx)
//
//	// Create a subweb
//	result, err := client.Web().Webs().Add(ctx, "Team Site", "team", nil)
//	fmt.Println(result.Web.URL())
//
// # Configuration
//
// Configuration is provided through functional options, environment variables
// (see NewFromEnv), or a YAML file (see LoadConfigFile).
//
// # Batching
//
// Multiple requests can be composed into a single OData $batch submission:
//
//	batch := client.NewBatch()
//	info, _ := client.Web().InBatch(batch).Get(ctx)
//	err := batch.Execute(ctx)
//	fmt.Println(info.Title) // populated by Execute
//
// Operations whose results require synchronous response shaping (Webs.Add,
// Web.EnsureUser, Web.GetCatalog) cannot join a batch and return
// ErrNotBatchable.
package sharepoint
