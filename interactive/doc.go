// Package interactive is the full-screen terminal shell of previewctl.
//
// One screen holds three panels:
//   - Node class radio buttons (exactly one selected)
//   - Parameter checkboxes for classes with more than one parameter
//   - Action radio buttons: On, Off, Toggle
//
// Apply builds a toggling.Request from the panels and runs it against the
// host. RPC failures open a modal warning; the activity pane at the bottom
// shows log lines captured while the shell owns the terminal.
//
// Launch with: previewctl ui
package interactive
