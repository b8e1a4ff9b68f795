package constant

// AsciiArtLogo is the banner shown above the root command help.
const AsciiArtLogo = `
   ▄▄▄  ▄    ▄▄  ▄  ▄  ▄▄▄ ▄  ▄ ▄▄▄ ▄   ▄
   █▄▀  █   █▄▄█ ▀▄▀  ▀▄▄  █▄▄█ █▄  █   █
   █    █▄▄ █  █  █   ▄▄▄▀ █  █ █▄▄ █▄▄ █▄▄`
