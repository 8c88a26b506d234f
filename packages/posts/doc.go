// Package posts builds request descriptors for the posts resource.
//
// Every builder is pure: it performs no I/O, never fails and returns a fresh
// *http.Request on each call. Arguments are used verbatim, so negative ids or
// empty titles produce descriptors exactly as given.
package posts
