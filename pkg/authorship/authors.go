package authorship

// DefaultAbbreviations maps standard abbreviations of prolific authors to
// their full surnames.
var DefaultAbbreviations = map[string]string{
	"L.":       "Linnaeus",
	"Linn.":    "Linnaeus",
	"L.f.":     "Linnaeus filius",
	"Mill.":    "Miller",
	"DC.":      "de Candolle",
	"Lam.":     "Lamarck",
	"Willd.":   "Willdenow",
	"Pers.":    "Persoon",
	"Fr.":      "Fries",
	"Hook.":    "Hooker",
	"Hook.f.":  "Hooker filius",
	"Benth.":   "Bentham",
	"Lindl.":   "Lindley",
	"Jacq.":    "Jacquin",
	"Thunb.":   "Thunberg",
	"Sm.":      "Smith",
	"Desf.":    "Desfontaines",
	"Sw.":      "Swartz",
	"Michx.":   "Michaux",
	"Nutt.":    "Nuttall",
	"Torr.":    "Torrey",
	"A.Gray":   "Gray",
	"Boiss.":   "Boissier",
	"Rchb.":    "Reichenbach",
	"Spreng.":  "Sprengel",
	"Schltr.":  "Schlechter",
	"Kunth":    "Kunth",
	"Walp.":    "Walpers",
	"Muell.":   "Mueller",
	"Müll.":    "Müller",
	"Gmel.":    "Gmelin",
	"Fabr.":    "Fabricius",
	"Latr.":    "Latreille",
	"Walck.":   "Walckenaer",
	"Sacc.":    "Saccardo",
	"Berk.":    "Berkeley",
	"Kütz.":    "Kützing",
	"Ehrenb.":  "Ehrenberg",
	"Raf.":     "Rafinesque",
	"Steud.":   "Steudel",
	"Poir.":    "Poiret",
	"Wall.":    "Wallich",
	"Roxb.":    "Roxburgh",
	"Blume":    "Blume",
	"Miq.":     "Miquel",
	"Vahl":     "Vahl",
	"Cav.":     "Cavanilles",
	"Ruiz":     "Ruiz",
	"Pav.":     "Pavon",
	"Humb.":    "Humboldt",
	"Bonpl.":   "Bonpland",
	"Baker":    "Baker",
	"Desv.":    "Desvaux",
	"Nees":     "Nees",
	"Hochst.":  "Hochstetter",
	"Ledeb.":   "Ledebour",
	"Regel":    "Regel",
	"Turcz.":   "Turczaninow",
	"Maxim.":   "Maximowicz",
	"Franch.":  "Franchet",
	"H.Lév.":   "Léveillé",
	"Nakai":    "Nakai",
	"Makino":   "Makino",
	"Koidz.":   "Koidzumi",
	"Hayata":   "Hayata",
	"Merr.":    "Merrill",
	"Standl.":  "Standley",
	"Britton":  "Britton",
	"Rydb.":    "Rydberg",
	"Greene":   "Greene",
	"S.Watson": "Watson",
}
