// Package request implements the request aggregate: a user's posted need
// with a geographic anchor. A request is created together with its order and
// conversation in one transaction and is deactivated, never deleted.
package request
