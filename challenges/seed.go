package challenges

import "vulnops/models"

var seedChallenges = []models.Challenge{
	{
		ID:          "1",
		Title:       "Web Injection 101",
		Description: "A simple SQL injection challenge to test your skills. Bypass the login form and find the admin credentials.",
		Difficulty:  models.Easy,
		Category:    "Web Exploitation",
		Type:        models.TypeFile,
		Points:      100,
		SolveCount:  284,
	},
	{
		ID:          "2",
		Title:       "Buffer Overflow Basics",
		Description: "Learn the basics of buffer overflow attacks by exploiting a vulnerable program. Overflow the buffer and get a shell.",
		Difficulty:  models.Medium,
		Category:    "Binary Exploitation",
		Type:        models.TypeFile,
		Points:      250,
		SolveCount:  152,
	},
	{
		ID:          "3",
		Title:       "Cryptic Message",
		Description: "Decode the encrypted message using various cryptographic techniques. Multiple layers of encryption were used.",
		Difficulty:  models.Easy,
		Category:    "Cryptography",
		Type:        models.TypeFile,
		Points:      150,
		SolveCount:  201,
	},
	{
		ID:          "4",
		Title:       "Vulnerable Linux",
		Description: "Boot up this vulnerable Linux VM and find the multiple flags hidden throughout the system.",
		Difficulty:  models.Hard,
		Category:    "Penetration Testing",
		Type:        models.TypeVM,
		Points:      400,
		SolveCount:  87,
	},
	{
		ID:          "5",
		Title:       "Network Sniffer",
		Description: "Analyze this network capture file and find the credentials being passed in plain text.",
		Difficulty:  models.Medium,
		Category:    "Network Analysis",
		Type:        models.TypeFile,
		Points:      200,
		SolveCount:  178,
	},
	{
		ID:          "6",
		Title:       "Reverse Me",
		Description: "Reverse engineer this binary file to find the correct input that produces the flag.",
		Difficulty:  models.Hard,
		Category:    "Reverse Engineering",
		Type:        models.TypeFile,
		Points:      350,
		SolveCount:  92,
	},
	{
		ID:          "7",
		Title:       "Hidden in Plain Sight",
		Description: "Find the hidden data in this image file. Steganography techniques were used to conceal the flag.",
		Difficulty:  models.Easy,
		Category:    "Steganography",
		Type:        models.TypeFile,
		Points:      100,
		SolveCount:  243,
	},
	{
		ID:          "8",
		Title:       "Memory Forensics",
		Description: "Analyze this memory dump and find evidence of the attack that occurred on the system.",
		Difficulty:  models.Insane,
		Category:    "Forensics",
		Type:        models.TypeFile,
		Points:      500,
		SolveCount:  45,
	},
}

var seedSolves = map[string][]string{
	"user123":  {"1", "3", "7"},
	"admin123": {"1", "2", "3", "4", "5"},
}
