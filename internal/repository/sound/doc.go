// Package sound implements the local library of alarm sounds.
//
// The FileLibrary copies user-selected WAV files into the asset directory and
// returns the path the engine should play. Existing assets are reused.
package sound
