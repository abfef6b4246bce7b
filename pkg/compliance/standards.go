package compliance

// Standards returns the built-in standards: NIST 800-63B, PCI DSS, ISO/IEC 27001, HIPAA and SOC 2.
func Standards() []Standard {
	return []Standard{nist(), pci(), iso(), hipaa(), soc2()}
}

func nist() Standard {
	return Standard{
		Key:         "nist",
		Name:        "NIST 800-63B",
		Description: "National Institute of Standards and Technology Digital Identity Guidelines",
		Checks: []Check{
			{"nist-1", "Minimum 12 Characters", "Password must be at least 12 characters long", 20, MinLength(12)},
			{"nist-2", "All ASCII Characters Allowed", "Support all printable ASCII characters including spaces", 10, Organisational()},
			{"nist-3", "No Composition Rules Required", "Should not enforce specific character type requirements", 15, Organisational()},
			{"nist-4", "Breach Database Check", "Compare against known compromised password databases", 25, NotCommon()},
			{"nist-5", "No Periodic Changes", "Only require password change if compromise suspected", 15, Organisational()},
			{"nist-6", "Password Strength Meter", "Provide real-time password strength feedback", 15, Organisational()},
		},
	}
}

func pci() Standard {
	return Standard{
		Key:         "pci",
		Name:        "PCI DSS 3.2.1",
		Description: "Payment Card Industry Data Security Standard",
		Checks: []Check{
			{"pci-1", "Minimum 7 Characters", "Passwords must be at least 7 characters (8+ recommended)", 15, MinLength(7)},
			{"pci-2", "Numeric and Alphabetic", "Password must contain both letters and numbers", 20, All(Letters(), Digits())},
			{"pci-3", "90-Day Expiration", "Passwords must be changed at least every 90 days", 15, Organisational()},
			{"pci-4", "Password History", "Cannot reuse any of the last 4 passwords", 15, Organisational()},
			{"pci-5", "Lockout After 6 Attempts", "Account locks after 6 failed login attempts", 20, Organisational()},
			{"pci-6", "Unique User IDs", "Each user must have a unique ID that cannot be shared", 15, Organisational()},
		},
	}
}

func iso() Standard {
	return Standard{
		Key:         "iso",
		Name:        "ISO/IEC 27001",
		Description: "Information Security Management System Standard",
		Checks: []Check{
			{"iso-1", "Password Complexity", "Minimum length and complexity requirements enforced", 20, All(MinLength(8), Uppercase(), Digits())},
			{"iso-2", "Password Protection", "Passwords stored in encrypted or hashed form", 25, Organisational()},
			{"iso-3", "Password Management System", "Formal system for password generation, distribution, and storage", 20, Organisational()},
			{"iso-4", "User Responsibilities", "Users required to maintain password confidentiality", 15, Organisational()},
			{"iso-5", "Temporary Passwords", "Force change of temporary/initial passwords at first use", 10, Organisational()},
			{"iso-6", "Access Control", "Password-based access controls for systems and applications", 10, Organisational()},
		},
	}
}

func hipaa() Standard {
	return Standard{
		Key:         "hipaa",
		Name:        "HIPAA Security Rule",
		Description: "Health Insurance Portability and Accountability Act",
		Checks: []Check{
			{"hipaa-1", "Unique User Identification", "Assign unique identifier for tracking user identity", 20, Organisational()},
			{"hipaa-2", "Emergency Access Procedure", "Establish procedures for emergency access to ePHI", 15, Organisational()},
			{"hipaa-3", "Automatic Logoff", "Implement automatic logoff from inactive sessions", 15, Organisational()},
			{"hipaa-4", "Encryption and Decryption", "Implement mechanisms to encrypt and decrypt ePHI", 25, Organisational()},
			{"hipaa-5", "Password Complexity", "Strong passwords with complexity requirements", 15, All(MinLength(8), Uppercase(), Lowercase(), Digits(), Symbols())},
			{"hipaa-6", "Transmission Security", "Guard against unauthorized access during transmission", 10, Organisational()},
		},
	}
}

func soc2() Standard {
	return Standard{
		Key:         "soc2",
		Name:        "SOC 2 Type II",
		Description: "Service Organization Control 2 Trust Services Criteria",
		Checks: []Check{
			{"soc2-1", "Strong Authentication", "Multi-factor authentication for privileged users", 25, Organisational()},
			{"soc2-2", "Password Requirements", "Minimum complexity and length standards enforced", 20, All(MinLength(10), Uppercase(), Digits())},
			{"soc2-3", "Access Restrictions", "Logical access to systems restricted to authorized users", 15, Organisational()},
			{"soc2-4", "Password Security Policies", "Documented policies for password creation and management", 15, Organisational()},
			{"soc2-5", "Monitoring and Review", "Regular review of user access and password compliance", 15, Organisational()},
			{"soc2-6", "Security Awareness Training", "Regular security training including password best practices", 10, Organisational()},
		},
	}
}
