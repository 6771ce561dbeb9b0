package models

// DefaultProfile returns the hard-coded document seeded on the first ever
// read of an empty store. Every call builds a fresh value so callers can
// mutate the result freely.
func DefaultProfile() *Profile {
	return &Profile{
		Web2: Persona{
			Personal: PersonalInfo{
				Name:        "JR Solis",
				Title:       "Software Developer",
				Email:       "hello@jrsolis.dev",
				ShowEmail:   true,
				Phone:       "",
				ShowPhone:   false,
				BorderStyle: BorderSolid,
			},
			Sections: []Section{
				{
					Title: "About",
					Blocks: []ContentBlock{
						{Type: BlockTitle, Content: "Welcome"},
						{Type: BlockText, Content: "This portfolio is still being set up."},
					},
				},
			},
		},
		Web3: Persona{
			Personal: PersonalInfo{
				Name:        "solis.eth",
				Title:       "Builder",
				Email:       "",
				ShowEmail:   false,
				Phone:       "",
				ShowPhone:   false,
				BorderStyle: BorderGradient,
			},
			Sections: []Section{
				{
					Title: "About",
					Blocks: []ContentBlock{
						{Type: BlockTitle, Content: "gm"},
						{Type: BlockText, Content: "Pseudonymous work lives here."},
					},
				},
			},
		},
	}
}
