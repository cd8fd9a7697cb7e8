package normalize

// uspsSuffix is one row of USPS Publication 28 Appendix C1: a primary street
// suffix name, the spellings in common use, and the standard abbreviation.
type uspsSuffix struct {
	primary  string
	common   []string
	standard string
}

var uspsSuffixes = []uspsSuffix{
	{"ALLEY", []string{"ALLEE", "ALLEY", "ALLY", "ALY"}, "ALY"},
	{"ANEX", []string{"ANEX", "ANNEX", "ANNX", "ANX"}, "ANX"},
	{"ARCADE", []string{"ARC", "ARCADE"}, "ARC"},
	{"AVENUE", []string{"AV", "AVE", "AVEN", "AVENU", "AVENUE", "AVN", "AVNUE"}, "AVE"},
	{"BAYOU", []string{"BAYOO", "BAYOU"}, "BYU"},
	{"BEACH", []string{"BCH", "BEACH"}, "BCH"},
	{"BEND", []string{"BEND", "BND"}, "BND"},
	{"BLUFF", []string{"BLF", "BLUF", "BLUFF"}, "BLF"},
	{"BLUFFS", []string{"BLUFFS"}, "BLFS"},
	{"BOTTOM", []string{"BOT", "BTM", "BOTTM", "BOTTOM"}, "BTM"},
	{"BOULEVARD", []string{"BLVD", "BOUL", "BOULEVARD", "BOULV"}, "BLVD"},
	{"BRANCH", []string{"BR", "BRNCH", "BRANCH"}, "BR"},
	{"BRIDGE", []string{"BRDGE", "BRG", "BRIDGE"}, "BRG"},
	{"BROOK", []string{"BRK", "BROOK"}, "BRK"},
	{"BROOKS", []string{"BROOKS"}, "BRKS"},
	{"BURG", []string{"BURG"}, "BG"},
	{"BURGS", []string{"BURGS"}, "BGS"},
	{"BYPASS", []string{"BYP", "BYPA", "BYPAS", "BYPASS", "BYPS"}, "BYP"},
	{"CAMP", []string{"CAMP", "CP", "CMP"}, "CP"},
	{"CANYON", []string{"CANYN", "CANYON", "CNYN"}, "CYN"},
	{"CAPE", []string{"CAPE", "CPE"}, "CPE"},
	{"CAUSEWAY", []string{"CAUSEWAY", "CAUSWA", "CSWY"}, "CSWY"},
	{"CENTER", []string{"CEN", "CENT", "CENTER", "CENTR", "CENTRE", "CNTER", "CNTR", "CTR"}, "CTR"},
	{"CENTERS", []string{"CENTERS"}, "CTRS"},
	{"CIRCLE", []string{"CIR", "CIRC", "CIRCL", "CIRCLE", "CRCL", "CRCLE"}, "CIR"},
	{"CIRCLES", []string{"CIRCLES"}, "CIRS"},
	{"CLIFF", []string{"CLF", "CLIFF"}, "CLF"},
	{"CLIFFS", []string{"CLFS", "CLIFFS"}, "CLFS"},
	{"CLUB", []string{"CLB", "CLUB"}, "CLB"},
	{"COMMON", []string{"COMMON"}, "CMN"},
	{"COMMONS", []string{"COMMONS"}, "CMNS"},
	{"CORNER", []string{"COR", "CORNER"}, "COR"},
	{"CORNERS", []string{"CORNERS", "CORS"}, "CORS"},
	{"COURSE", []string{"COURSE", "CRSE"}, "CRSE"},
	{"COURT", []string{"COURT", "CT"}, "CT"},
	{"COURTS", []string{"COURTS", "CTS"}, "CTS"},
	{"COVE", []string{"COVE", "CV"}, "CV"},
	{"COVES", []string{"COVES"}, "CVS"},
	{"CREEK", []string{"CREEK", "CRK"}, "CRK"},
	{"CRESCENT", []string{"CRESCENT", "CRES", "CRSENT", "CRSNT"}, "CRES"},
	{"CREST", []string{"CREST"}, "CRST"},
	{"CROSSING", []string{"CROSSING", "CRSSNG", "XING"}, "XING"},
	{"CROSSROAD", []string{"CROSSROAD"}, "XRD"},
	{"CROSSROADS", []string{"CROSSROADS"}, "XRDS"},
	{"CURVE", []string{"CURVE"}, "CURV"},
	{"DALE", []string{"DALE", "DL"}, "DL"},
	{"DAM", []string{"DAM", "DM"}, "DM"},
	{"DIVIDE", []string{"DIV", "DIVIDE", "DV", "DVD"}, "DV"},
	{"DRIVE", []string{"DR", "DRIV", "DRIVE", "DRV"}, "DR"},
	{"DRIVES", []string{"DRIVES"}, "DRS"},
	{"ESTATE", []string{"EST", "ESTATE"}, "EST"},
	{"ESTATES", []string{"ESTATES", "ESTS"}, "ESTS"},
	{"EXPRESSWAY", []string{"EXP", "EXPR", "EXPRESS", "EXPRESSWAY", "EXPW", "EXPY"}, "EXPY"},
	{"EXTENSION", []string{"EXT", "EXTENSION", "EXTN", "EXTNSN"}, "EXT"},
	{"EXTENSIONS", []string{"EXTS"}, "EXTS"},
	{"FALL", []string{"FALL"}, "FALL"},
	{"FALLS", []string{"FALLS", "FLS"}, "FLS"},
	{"FERRY", []string{"FERRY", "FRRY", "FRY"}, "FRY"},
	{"FIELD", []string{"FIELD", "FLD"}, "FLD"},
	{"FIELDS", []string{"FIELDS", "FLDS"}, "FLDS"},
	{"FLAT", []string{"FLAT", "FLT"}, "FLT"},
	{"FLATS", []string{"FLATS", "FLTS"}, "FLTS"},
	{"FORD", []string{"FORD", "FRD"}, "FRD"},
	{"FORDS", []string{"FORDS"}, "FRDS"},
	{"FOREST", []string{"FOREST", "FORESTS", "FRST"}, "FRST"},
	{"FORGE", []string{"FORG", "FORGE", "FRG"}, "FRG"},
	{"FORGES", []string{"FORGES"}, "FRGS"},
	{"FORK", []string{"FORK", "FRK"}, "FRK"},
	{"FORKS", []string{"FORKS", "FRKS"}, "FRKS"},
	{"FORT", []string{"FORT", "FRT", "FT"}, "FT"},
	{"FREEWAY", []string{"FREEWAY", "FREEWY", "FRWAY", "FRWY", "FWY"}, "FWY"},
	{"GARDEN", []string{"GARDEN", "GARDN", "GRDEN", "GRDN"}, "GDN"},
	{"GARDENS", []string{"GARDENS", "GDNS", "GRDNS"}, "GDNS"},
	{"GATEWAY", []string{"GATEWAY", "GATEWY", "GATWAY", "GTWAY", "GTWY"}, "GTWY"},
	{"GLEN", []string{"GLEN", "GLN"}, "GLN"},
	{"GLENS", []string{"GLENS"}, "GLNS"},
	{"GREEN", []string{"GREEN", "GRN"}, "GRN"},
	{"GREENS", []string{"GREENS"}, "GRNS"},
	{"GROVE", []string{"GROV", "GROVE", "GRV"}, "GRV"},
	{"GROVES", []string{"GROVES"}, "GRVS"},
	{"HARBOR", []string{"HARB", "HARBOR", "HARBR", "HBR", "HRBOR"}, "HBR"},
	{"HARBORS", []string{"HARBORS"}, "HBRS"},
	{"HAVEN", []string{"HAVEN", "HVN"}, "HVN"},
	{"HEIGHTS", []string{"HT", "HTS"}, "HTS"},
	{"HIGHWAY", []string{"HIGHWAY", "HIGHWY", "HIWAY", "HIWY", "HWAY", "HWY"}, "HWY"},
	{"HILL", []string{"HILL", "HL"}, "HL"},
	{"HILLS", []string{"HILLS", "HLS"}, "HLS"},
	{"HOLLOW", []string{"HLLW", "HOLLOW", "HOLLOWS", "HOLW", "HOLWS"}, "HOLW"},
	{"INLET", []string{"INLT"}, "INLT"},
	{"ISLAND", []string{"IS", "ISLAND", "ISLND"}, "IS"},
	{"ISLANDS", []string{"ISLANDS", "ISLNDS", "ISS"}, "ISS"},
	{"ISLE", []string{"ISLE", "ISLES"}, "ISLE"},
	{"JUNCTION", []string{"JCT", "JCTION", "JCTN", "JUNCTION", "JUNCTN", "JUNCTON"}, "JCT"},
	{"JUNCTIONS", []string{"JCTNS", "JCTS", "JUNCTIONS"}, "JCTS"},
	{"KEY", []string{"KEY", "KY"}, "KY"},
	{"KEYS", []string{"KEYS", "KYS"}, "KYS"},
	{"KNOLL", []string{"KNL", "KNOL", "KNOLL"}, "KNL"},
	{"KNOLLS", []string{"KNLS", "KNOLLS"}, "KNLS"},
	{"LAKE", []string{"LK", "LAKE"}, "LK"},
	{"LAKES", []string{"LKS", "LAKES"}, "LKS"},
	{"LAND", []string{"LAND"}, "LAND"},
	{"LANDING", []string{"LANDING", "LNDG", "LNDNG"}, "LNDG"},
	{"LANE", []string{"LANE", "LN"}, "LN"},
	{"LIGHT", []string{"LGT", "LIGHT"}, "LGT"},
	{"LIGHTS", []string{"LIGHTS"}, "LGTS"},
	{"LOAF", []string{"LF", "LOAF"}, "LF"},
	{"LOCK", []string{"LCK", "LOCK"}, "LCK"},
	{"LOCKS", []string{"LCKS", "LOCKS"}, "LCKS"},
	{"LODGE", []string{"LDG", "LDGE", "LODG", "LODGE"}, "LDG"},
	{"LOOP", []string{"LOOP", "LOOPS"}, "LOOP"},
	{"MALL", []string{"MALL"}, "MALL"},
	{"MANOR", []string{"MNR", "MANOR"}, "MNR"},
	{"MANORS", []string{"MANORS", "MNRS"}, "MNRS"},
	{"MEADOW", []string{"MEADOW"}, "MDW"},
	{"MEADOWS", []string{"MDW", "MDWS", "MEADOWS", "MEDOWS"}, "MDWS"},
	{"MEWS", []string{"MEWS"}, "MEWS"},
	{"MILL", []string{"MILL"}, "ML"},
	{"MILLS", []string{"MILLS"}, "MLS"},
	{"MISSION", []string{"MISSN", "MSSN"}, "MSN"},
	{"MOTORWAY", []string{"MOTORWAY"}, "MTWY"},
	{"MOUNT", []string{"MNT", "MT", "MOUNT"}, "MT"},
	{"MOUNTAIN", []string{"MNTAIN", "MNTN", "MOUNTAIN", "MOUNTIN", "MTIN", "MTN"}, "MTN"},
	{"MOUNTAINS", []string{"MNTNS", "MOUNTAINS"}, "MTNS"},
	{"NECK", []string{"NCK", "NECK"}, "NCK"},
	{"ORCHARD", []string{"ORCH", "ORCHARD", "ORCHRD"}, "ORCH"},
	{"OVAL", []string{"OVAL", "OVL"}, "OVAL"},
	{"OVERPASS", []string{"OVERPASS"}, "OPAS"},
	{"PARK", []string{"PARK", "PRK"}, "PARK"},
	{"PARKS", []string{"PARKS"}, "PARK"},
	{"PARKWAY", []string{"PARKWAY", "PARKWY", "PKWAY", "PKWY", "PKY"}, "PKWY"},
	{"PARKWAYS", []string{"PARKWAYS", "PKWYS"}, "PKWY"},
	{"PASS", []string{"PASS"}, "PASS"},
	{"PASSAGE", []string{"PASSAGE"}, "PSGE"},
	{"PATH", []string{"PATH", "PATHS"}, "PATH"},
	{"PIKE", []string{"PIKE", "PIKES"}, "PIKE"},
	{"PINE", []string{"PINE"}, "PNE"},
	{"PINES", []string{"PINES", "PNES"}, "PNES"},
	{"PLACE", []string{"PL"}, "PL"},
	{"PLAIN", []string{"PLAIN", "PLN"}, "PLN"},
	{"PLAINS", []string{"PLAINS", "PLNS"}, "PLNS"},
	{"PLAZA", []string{"PLAZA", "PLZ", "PLZA"}, "PLZ"},
	{"POINT", []string{"POINT", "PT"}, "PT"},
	{"POINTS", []string{"POINTS", "PTS"}, "PTS"},
	{"PORT", []string{"PORT", "PRT"}, "PRT"},
	{"PORTS", []string{"PORTS", "PRTS"}, "PRTS"},
	{"PRAIRIE", []string{"PR", "PRAIRIE", "PRR"}, "PR"},
	{"RADIAL", []string{"RAD", "RADIAL", "RADIEL", "RADL"}, "RADL"},
	{"RAMP", []string{"RAMP"}, "RAMP"},
	{"RANCH", []string{"RANCH", "RANCHES", "RNCH", "RNCHS"}, "RNCH"},
	{"RAPID", []string{"RAPID", "RPD"}, "RPD"},
	{"RAPIDS", []string{"RAPIDS", "RPDS"}, "RPDS"},
	{"REST", []string{"REST", "RST"}, "RST"},
	{"RIDGE", []string{"RDG", "RDGE", "RIDGE"}, "RDG"},
	{"RIDGES", []string{"RDGS", "RIDGES"}, "RDGS"},
	{"RIVER", []string{"RIV", "RIVER", "RVR", "RIVR"}, "RIV"},
	{"ROAD", []string{"RD", "ROAD"}, "RD"},
	{"ROADS", []string{"ROADS", "RDS"}, "RDS"},
	{"ROUTE", []string{"ROUTE"}, "RTE"},
	{"ROW", []string{"ROW"}, "ROW"},
	{"RUE", []string{"RUE"}, "RUE"},
	{"RUN", []string{"RUN"}, "RUN"},
	{"SHOAL", []string{"SHL", "SHOAL"}, "SHL"},
	{"SHOALS", []string{"SHLS", "SHOALS"}, "SHLS"},
	{"SHORE", []string{"SHOAR", "SHORE", "SHR"}, "SHR"},
	{"SHORES", []string{"SHOARS", "SHORES", "SHRS"}, "SHRS"},
	{"SKYWAY", []string{"SKYWAY"}, "SKWY"},
	{"SPRING", []string{"SPG", "SPNG", "SPRING", "SPRNG"}, "SPG"},
	{"SPRINGS", []string{"SPGS", "SPNGS", "SPRINGS", "SPRNGS"}, "SPGS"},
	{"SPUR", []string{"SPUR"}, "SPUR"},
	{"SPURS", []string{"SPURS"}, "SPUR"},
	{"SQUARE", []string{"SQ", "SQR", "SQRE", "SQU", "SQUARE"}, "SQ"},
	{"SQUARES", []string{"SQRS", "SQUARES"}, "SQS"},
	{"STATION", []string{"STA", "STATION", "STATN", "STN"}, "STA"},
	{"STRAVENUE", []string{"STRA", "STRAV", "STRAVEN", "STRAVENUE", "STRAVN", "STRVN", "STRVNUE"}, "STRA"},
	{"STREAM", []string{"STREAM", "STREME", "STRM"}, "STRM"},
	{"STREET", []string{"STREET", "STRT", "ST", "STR"}, "ST"},
	{"STREETS", []string{"STREETS"}, "STS"},
	{"SUMMIT", []string{"SMT", "SUMIT", "SUMITT", "SUMMIT"}, "SMT"},
	{"TERRACE", []string{"TER", "TERR", "TERRACE"}, "TER"},
	{"THROUGHWAY", []string{"THROUGHWAY"}, "TRWY"},
	{"TRACE", []string{"TRACE", "TRACES", "TRCE"}, "TRCE"},
	{"TRACK", []string{"TRACK", "TRACKS", "TRAK", "TRK", "TRKS"}, "TRAK"},
	{"TRAFFICWAY", []string{"TRAFFICWAY"}, "TRFY"},
	{"TRAIL", []string{"TRAIL", "TRAILS", "TRL", "TRLS"}, "TRL"},
	{"TRAILER", []string{"TRAILER", "TRLR", "TRLRS"}, "TRLR"},
	{"TUNNEL", []string{"TUNEL", "TUNL", "TUNLS", "TUNNEL", "TUNNELS", "TUNNL"}, "TUNL"},
	{"TURNPIKE", []string{"TRNPK", "TURNPIKE", "TURNPK"}, "TPKE"},
	{"UNDERPASS", []string{"UNDERPASS"}, "UPAS"},
	{"UNION", []string{"UN", "UNION"}, "UN"},
	{"UNIONS", []string{"UNIONS"}, "UNS"},
	{"VALLEY", []string{"VALLEY", "VALLY", "VLLY", "VLY"}, "VLY"},
	{"VALLEYS", []string{"VALLEYS", "VLYS"}, "VLYS"},
	{"VIADUCT", []string{"VDCT", "VIA", "VIADCT", "VIADUCT"}, "VIA"},
	{"VIEW", []string{"VIEW", "VW"}, "VW"},
	{"VIEWS", []string{"VIEWS", "VWS"}, "VWS"},
	{"VILLAGE", []string{"VILL", "VILLAG", "VILLAGE", "VILLG", "VILLIAGE", "VLG"}, "VLG"},
	{"VILLAGES", []string{"VILLAGES", "VLGS"}, "VLGS"},
	{"VILLE", []string{"VILLE", "VL"}, "VL"},
	{"VISTA", []string{"VIS", "VIST", "VISTA", "VST", "VSTA"}, "VIS"},
	{"WALK", []string{"WALK"}, "WALK"},
	{"WALKS", []string{"WALKS"}, "WALK"},
	{"WALL", []string{"WALL"}, "WALL"},
	{"WAY", []string{"WY", "WAY"}, "WAY"},
	{"WAYS", []string{"WAYS"}, "WAYS"},
	{"WELL", []string{"WELL"}, "WL"},
	{"WELLS", []string{"WELLS", "WLS"}, "WLS"},
}
