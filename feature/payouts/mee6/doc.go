// Package mee6 fetches level leaderboards from the Mee6 web API.
//
// One source (a Discord server ID) is one GET request; there is no paging and no
// retry. Every failure is wrapped in ErrFetch so the caller can treat it as an
// empty leaderboard.
package mee6
