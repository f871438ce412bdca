// Package bell produces a host-side audible bell for consoles attached to
// devices that cannot beep themselves.
//
// The tone is synthesized once with beep and handed as raw PCM to the first
// CLI player found on PATH (pacat, pw-cat, aplay, play, ffplay) or written to
// /dev/dsp on FreeBSD. Without any player the engine stays silent.
package bell
