// Package postprocessors holds the PostProcessor implementations applied to
// normalised documents. The chunker splits each document into the
// overlapping character windows that become index entries.
package postprocessors
