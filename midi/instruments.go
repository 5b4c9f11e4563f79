package midi

// GM is the General MIDI program list, indexed by program number.
var GM = [128]string{
	"Acoustic Grand Piano", "Bright Acoustic Piano", "Electric Grand Piano", "Honky-tonk Piano",
	"Electric Piano 1", "Electric Piano 2", "Harpsichord", "Clavinet",
	"Celesta", "Glockenspiel", "Music Box", "Vibraphone",
	"Marimba", "Xylophone", "Tubular Bells", "Dulcimer",
	"Drawbar Organ", "Percussive Organ", "Rock Organ", "Church Organ",
	"Reed Organ", "Accordion", "Harmonica", "Tango Accordion",
	"Acoustic Guitar (nylon)", "Acoustic Guitar (steel)", "Electric Guitar (jazz)", "Electric Guitar (clean)",
	"Electric Guitar (muted)", "Overdriven Guitar", "Distortion Guitar", "Guitar Harmonics",
	"Acoustic Bass", "Electric Bass (finger)", "Electric Bass (pick)", "Fretless Bass",
	"Slap Bass 1", "Slap Bass 2", "Synth Bass 1", "Synth Bass 2",
	"Violin", "Viola", "Cello", "Contrabass",
	"Tremolo Strings", "Pizzicato Strings", "Orchestral Harp", "Timpani",
	"String Ensemble 1", "String Ensemble 2", "SynthStrings 1", "SynthStrings 2",
	"Choir Aahs", "Voice Oohs", "Synth Voice", "Orchestra Hit",
	"Trumpet", "Trombone", "Tuba", "Muted Trumpet",
	"French Horn", "Brass Section", "SynthBrass 1", "SynthBrass 2",
	"Soprano Sax", "Alto Sax", "Tenor Sax", "Baritone Sax",
	"Oboe", "English Horn", "Bassoon", "Clarinet",
	"Piccolo", "Flute", "Recorder", "Pan Flute",
	"Blown Bottle", "Shakuhachi", "Whistle", "Ocarina",
	"Lead 1 (square)", "Lead 2 (sawtooth)", "Lead 3 (calliope)", "Lead 4 (chiff)",
	"Lead 5 (charang)", "Lead 6 (voice)", "Lead 7 (fifths)", "Lead 8 (bass + lead)",
	"Pad 1 (new age)", "Pad 2 (warm)", "Pad 3 (polysynth)", "Pad 4 (choir)",
	"Pad 5 (bowed)", "Pad 6 (metallic)", "Pad 7 (halo)", "Pad 8 (sweep)",
	"FX 1 (rain)", "FX 2 (soundtrack)", "FX 3 (crystal)", "FX 4 (atmosphere)",
	"FX 5 (brightness)", "FX 6 (goblins)", "FX 7 (echoes)", "FX 8 (sci-fi)",
	"Sitar", "Banjo", "Shamisen", "Koto",
	"Kalimba", "Bagpipe", "Fiddle", "Shanai",
	"Tinkle Bell", "Agogo", "Steel Drums", "Woodblock",
	"Taiko Drum", "Melodic Tom", "Synth Drum", "Reverse Cymbal",
	"Guitar Fret Noise", "Breath Noise", "Seashore", "Bird Tweet",
	"Telephone Ring", "Helicopter", "Applause", "Gunshot",
}

// Supported maps GM names onto the instrument names a chart may carry.
var Supported = map[string]string{
	"Electric Bass (finger)":  "bass-electric",
	"Electric Bass (pick)":    "bass-electric",
	"Bassoon":                 "bassoon",
	"Cello":                   "cello",
	"Clarinet":                "clarinet",
	"Contrabass":              "contrabass",
	"Flute":                   "flute",
	"French Horn":             "french-horn",
	"Acoustic Guitar (nylon)": "guitar-nylon",
	"Acoustic Guitar (steel)": "guitar-acoustic",
	"Electric Guitar (jazz)":  "guitar-electric",
	"Electric Guitar (clean)": "guitar-electric",
	"Electric Guitar (muted)": "guitar-electric",
	"Reed Organ":              "harmonium",
	"Orchestral Harp":         "harp",
	"Rock Organ":              "organ",
	"Church Organ":            "organ",
	"Acoustic Grand Piano":    "piano",
	"Bright Acoustic Piano":   "piano",
	"Electric Grand Piano":    "piano",
	"Honky-tonk Piano":        "piano",
	"Electric Piano 1":        "piano",
	"Electric Piano 2":        "piano",
	"Soprano Sax":             "saxophone",
	"Alto Sax":                "saxophone",
	"Tenor Sax":               "saxophone",
	"Baritone Sax":            "saxophone",
	"Trombone":                "trombone",
	"Trumpet":                 "trumpet",
	"Tuba":                    "tuba",
	"Violin":                  "violin",
	"Xylophone":               "xylophone",
}

// Instrument returns the chart instrument for a GM program, or "" when the
// program has no supported counterpart.
func Instrument(program uint8) string {
	if int(program) >= len(GM) {
		return ""
	}
	return Supported[GM[program]]
}

// Program returns the lowest GM program that maps to a chart instrument.
func Program(instrument string) (uint8, bool) {
	if instrument == "" {
		return 0, false
	}
	for p, name := range GM {
		if Supported[name] == instrument {
			return uint8(p), true
		}
	}
	return 0, false
}
