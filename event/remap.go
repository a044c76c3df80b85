// SPDX-License-Identifier: EPL-2.0

package event

// ReplacePrograms rewrites instrument programs according to the mapping from
// instrument name to General MIDI program. Instruments whose name is absent
// from the mapping are dropped entirely: the mapping doubles as the list of
// instruments wanted for a particular renderer.
//
// The input document is never modified.
func ReplacePrograms(document Document, programs map[string]int) Document {
	remapped := make(Document, 0, len(document))
	for _, instrument := range document {
		program, ok := programs[instrument.Name]
		if !ok {
			continue
		}
		instrument.Program = program
		remapped = append(remapped, instrument)
	}
	return remapped
}
