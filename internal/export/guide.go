package export

// UploadGuide is the static _UPLOAD_GUIDE.md written next to the
// converted documents.
const UploadGuide = `# How to Upload to Claude

## Option 1: Claude Project Knowledge Base (Recommended)

1. Go to [claude.ai](https://claude.ai)
2. Create a new **Project** (or open an existing one)
3. Click **"Add content"** in the project knowledge section
4. Select **"Upload files"**
5. Select the ` + "`.md`" + ` files from this export
6. Claude will now have access to your ChatGPT conversation history

**Note**: Claude Projects have a knowledge base limit. If your export is very
large, upload the most important conversations first.

## Option 2: Direct Chat Upload

1. Start a new conversation on [claude.ai](https://claude.ai)
2. Use the paperclip icon to attach specific ` + "`.md`" + ` files
3. Ask Claude questions about the content

## Option 3: Claude Code (CLI)

1. Place the files in your project directory
2. Claude Code will automatically see them as part of your codebase

## Tips

- The ` + "`_INDEX.md`" + ` file is a great starting point. Upload it first so Claude
  can see an overview of all your conversations
- For very large exports, consider uploading by topic or time period
- Use the monthly/yearly organization to batch uploads logically
`
