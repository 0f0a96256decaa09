// Package scheduler runs the nightly enrollment day rollover.
//
// An enrollment's current day is derived from its start date, so reads
// through the enrollment service always compute it fresh. The cached
// current_day column only goes stale for users who do not open the app.
// The rollover job sweeps every active enrollment on a cron schedule and
// advances stale cached days forward, keeping database queries and any
// surface reading rows directly in step with the calendar.
//
// The sweep is strictly an advancing cache refresh:
//
//   - The cached day never moves backward.
//   - The computed day is capped at the program's duration.
//   - Programs are never completed here; finalization happens only when
//     the user marks the final day complete.
//
// The cron schedule comes from config.SchedulerConfig.RolloverSpec in
// standard five-field cron syntax, parsed by robfig/cron.
package scheduler
