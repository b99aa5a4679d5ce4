// Package domain holds the agency reputation model: the aggregate state,
// tier thresholds, milestone rules, and the static catalog of delayed bonus
// events rolled when a campaign is submitted.
package domain
