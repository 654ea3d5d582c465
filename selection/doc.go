// Package selection implements keyboard navigation over a result list.
//
// Highlight movement is an explicit transition table over State{Index,
// Length}: ArrowDown and ArrowUp wrap around both ends, and a new list
// always resets the highlight to the first entry. A Controller adds the
// open/closed state of the search surface and turns key presses into
// Actions (activate the highlighted result, dismiss, open) that the owner
// carries out. Keys other than the open shortcut are ignored while closed.
package selection
