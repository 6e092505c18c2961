package rules

// builtinExtensions is the default extension-to-category table. Config
// overlays and AddExtension calls overwrite individual entries.
var builtinExtensions = map[string]string{
	".jpg":  "images",
	".jpeg": "images",
	".png":  "images",
	".gif":  "images",
	".bmp":  "images",
	".webp": "images",
	".svg":  "images",
	".heic": "images",

	".pdf":  "documents",
	".doc":  "documents",
	".docx": "documents",
	".odt":  "documents",
	".rtf":  "documents",
	".md":   "documents",

	".xls":  "spreadsheets",
	".xlsx": "spreadsheets",
	".csv":  "spreadsheets",
	".ods":  "spreadsheets",

	".mp4":  "videos",
	".mkv":  "videos",
	".mov":  "videos",
	".avi":  "videos",
	".webm": "videos",

	".mp3":  "music",
	".flac": "music",
	".wav":  "music",
	".ogg":  "music",
	".m4a":  "music",

	".zip": "archives",
	".tar": "archives",
	".gz":  "archives",
	".bz2": "archives",
	".xz":  "archives",
	".rar": "archives",
	".7z":  "archives",
}
