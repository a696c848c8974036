// Package commands defines the mypad CLI.
//
// Commands
//
//   - encrypt  Seal text (argument or stdin) and print the envelope
//   - decrypt  Open an envelope (argument or stdin) and print the text
//   - seal     Seal text into a named note under the notes directory
//   - open     Open a named note
//   - notes    List stored notes
//   - chat     Join a padserver realtime channel
//
// # Implementation
//
// The root command loads the YAML config and builds the envelope codec and
// note store before any subcommand runs.
package commands
