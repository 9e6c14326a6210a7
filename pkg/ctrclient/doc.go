// Package ctrclient provides the main entry point for creating threat response
// API clients.
//
// New validates the configuration, builds the request pipeline once and, when
// client credentials are configured, exchanges them for an access token before
// returning:
//
//	cli, err := ctrclient.New(ctx, &ctr.Config{
//	  Region:       ctr.RegionUS,
//	  ClientID:     os.Getenv("CTR_CLIENT_ID"),
//	  ClientSecret: os.Getenv("CTR_CLIENT_SECRET"),
//	  Logger:       ctr.NewZapLogger(zapLogger),
//	})
//
// The convenience constructors NewWithClientCredentials and NewWithToken cover
// the common cases.
package ctrclient
