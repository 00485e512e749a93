// Package orient contains the domain model of the REST request workbench:
// request specifications (Location), their grouping into directories, the
// collection store that owns them and the Postman import adapter.
//
// The package holds data and synchronous operations only. Sending a Location
// to a live server is the job of the dispatch package.
package orient
