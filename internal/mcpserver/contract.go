package mcpserver

// VaultLayout describes what a created vault contains on disk, for clients
// that want to inspect or extend a vault after creation.
const VaultLayout = `# Vaultboot Vault Layout

Every vault created or adopted by vaultboot has this structure.

## Tree

` + "```" + `text
<vault>/
  <template folders>/              # one directory per template folder
  Welcome.md                       # starter notes for the template
  .obsidian/
    app.json
    core-plugins.json
    community-plugins.json         # ordered list of plugin ids
    hotkeys.json
    workspace.json
    plugins/
      <plugin-id>/
        manifest.json              # absent when no manifest was found
        main.js                    # copied only from a plugin-template source
        styles.css
        data.json
` + "```" + `

## Rules

1. **The vault directory must not exist beforehand.** Creation never
   overwrites or merges into an existing directory.
2. **JSON is two-space indented.** Files are written whole, never patched.
3. **` + "`" + `{{date}}` + "`" + ` in starter notes is replaced** with the creation date
   (YYYY-MM-DD). Other placeholders such as ` + "`" + `{{title}}` + "`" + ` are left for
   the template-insertion plugin.
4. **` + "`" + `templater-obsidian` + "`" + ` is always listed** in community-plugins.json.
5. **Adopted vaults take settings, hotkeys and the plugin list** from the
   external configuration. Plugin data and code are never copied from it.
6. **A plugin without a manifest still gets its directory.** The report lists
   a warning for it.
`
